// Command migrate creates or updates the session table and optionally purges
// expired sessions. It reads the same SESSION_DB_* settings as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/auth"
)

func main() {
	_ = godotenv.Load()

	driver := flag.String("driver", envOr("SESSION_DB_DRIVER", "sqlite"), "Session database driver: mysql or sqlite")
	dsn := flag.String("dsn", envOr("SESSION_DB_DSN", "file:admin_sessions.db?_busy_timeout=5000"), "Session database DSN")
	purge := flag.Bool("purge", false, "Also delete expired sessions")
	flag.Parse()

	var dial gorm.Dialector
	switch strings.ToLower(*driver) {
	case "mysql":
		dial = mysql.Open(*dsn)
	case "sqlite":
		dial = sqlite.Open(*dsn)
	default:
		log.Fatalf("unknown driver %q", *driver)
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	store := auth.NewStore(db, nil, 0)
	if err := store.Migrate(ctx); err != nil {
		log.Fatalf("Failed to migrate admin_sessions: %v", err)
	}
	fmt.Println("✓ admin_sessions is up to date")

	if *purge {
		n, err := store.PurgeExpired(ctx)
		if err != nil {
			log.Fatalf("Failed to purge sessions: %v", err)
		}
		fmt.Printf("✓ removed %d expired sessions\n", n)
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
