//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binDir = "bin"

// binaries built by Build, keyed by output name.
var binaries = map[string]string{
	"kamero-super-admin": "./cmd/web",
	"mockapi":            "./cmd/tools/mockapi",
	"migrate":            "./cmd/tools/migrate",
}

// mockEnv points the dashboard at the mock backend started by Mock.
var mockEnv = map[string]string{
	"KAMERO_API_URL":     "http://localhost:9090",
	"FIREBASE_AUTH_URL":  "http://localhost:9090/identity/v1",
	"FIREBASE_TOKEN_URL": "http://localhost:9090/identity/v1",
}

var Default = Dev

type DB mg.Namespace

// Migrate creates or updates the admin_sessions table.
func (DB) Migrate() error {
	return sh.RunV("go", "run", "./cmd/tools/migrate")
}

// Purge deletes expired sessions.
func (DB) Purge() error {
	return sh.RunV("go", "run", "./cmd/tools/migrate", "-purge")
}

// Dev migrates the session store and serves the dashboard against the mock
// backend. Run `mage mock` in another terminal first.
func Dev() error {
	mg.Deps(DB.Migrate)
	fmt.Println("Serving on :8080 against the mock backend on :9090 ...")
	return sh.RunWithV(mockEnv, "go", "run", "./cmd/web")
}

// Mock starts the in-memory backend and identity stub on :9090.
func Mock() error {
	return sh.RunV("go", "run", "./cmd/tools/mockapi")
}

// Build writes static binaries for the dashboard and its tools to bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}
	env := map[string]string{"CGO_ENABLED": "0"}
	for name, pkg := range binaries {
		out := filepath.Join(binDir, name+exeSuffix())
		fmt.Println("Building:", out)
		if err := sh.RunWithV(env, "go", "build", "-trimpath", "-o", out, pkg); err != nil {
			return err
		}
	}
	return nil
}

// Test runs the unit tests; the race detector is on unless MAGE_NORACE is set.
func Test() error {
	args := []string{"test", "./...", "-count=1"}
	if os.Getenv("MAGE_NORACE") == "" {
		args = append(args, "-race")
	}
	return sh.RunV("go", args...)
}

// Check is the pre-push gate: vet, golangci-lint, then tests.
func Check() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	if err := sh.RunV("golangci-lint", "run", "--timeout=3m", "./..."); err != nil {
		return fmt.Errorf("golangci-lint: %w (install with go install github.com/golangci/golangci-lint/v2/cmd/golangci-lint@latest)", err)
	}
	return Test()
}

func Clean() error {
	return os.RemoveAll(binDir)
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
