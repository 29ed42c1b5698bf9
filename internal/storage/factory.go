package storage

import (
	"context"
	"fmt"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/config"
)

type FactoryResult struct {
	Driver    string
	Presigner Presigner
	// Local is set for the local driver, whose uploads must be received by
	// the caller's HTTP server.
	Local *Local
}

// FromConfig builds the presigner selected by cfg.Driver. uploadBase is the
// absolute URL local presigned uploads are PUT to.
func FromConfig(ctx context.Context, cfg config.StorageConfig, uploadBase string, secret []byte) (FactoryResult, error) {
	switch cfg.Driver {
	case "", "local":
		l := NewLocal(cfg.LocalDir, cfg.LocalURLPrefix, uploadBase, secret)
		return FactoryResult{Driver: "local", Presigner: l, Local: l}, nil

	case "s3":
		if cfg.S3Region == "" || cfg.S3Bucket == "" || cfg.S3PublicBase == "" {
			return FactoryResult{}, fmt.Errorf("S3 config missing: S3_REGION, S3_BUCKET, S3_PUBLIC_BASE_URL required")
		}
		s, err := NewS3(ctx, S3Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Prefix:        cfg.S3Prefix,
			PublicBaseURL: cfg.S3PublicBase,
		})
		if err != nil {
			return FactoryResult{}, err
		}
		return FactoryResult{Driver: "s3", Presigner: s}, nil

	default:
		return FactoryResult{}, fmt.Errorf("unknown STORAGE_DRIVER: %s", cfg.Driver)
	}
}
