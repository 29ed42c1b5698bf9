// Command mockapi runs an in-memory stand-in for the Kamero backend and its
// identity provider so the dashboard can be exercised locally. Uploads are
// presigned through the configured storage driver; with the local driver the
// signed PUTs are received here as well.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/config"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/storage"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", ":9090", "Listen address")
	public := flag.String("public-url", "http://localhost:9090", "Base URL browsers and the dashboard reach this server at")
	password := flag.String("password", envOr("MOCK_PASSWORD", "kamero"), "Password accepted for every operator email")
	secret := flag.String("secret", envOr("MOCK_TOKEN_SECRET", "mock-token-secret"), "HMAC key for issued ID tokens and upload signatures")
	driver := flag.String("storage", envOr("STORAGE_DRIVER", "local"), "Storage driver: local or s3")
	dir := flag.String("dir", envOr("LOCAL_UPLOAD_DIR", "./storage/mock-uploads"), "Directory for local uploads")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	base := strings.TrimRight(*public, "/")
	store, err := storage.FromConfig(context.Background(), config.StorageConfig{
		Driver:         *driver,
		S3Region:       os.Getenv("S3_REGION"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Prefix:       envOr("S3_PREFIX", "uploads"),
		S3PublicBase:   os.Getenv("S3_PUBLIC_BASE_URL"),
		LocalDir:       *dir,
		LocalURLPrefix: base + "/uploads",
	}, base+"/_uploads", []byte(*secret))
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	srv := newServer(store, *password, []byte(*secret), logger)
	logger.Info("mockapi_listen",
		slog.String("addr", *addr),
		slog.String("storage", store.Driver),
		slog.String("api_url", base+"/"),
		slog.String("identity_url", base+"/identity/v1"),
	)
	if err := srv.routes().Run(*addr); err != nil {
		log.Fatalf("listen: %v", err)
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
