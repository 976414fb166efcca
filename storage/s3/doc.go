// Package s3 implements the filegate storage capability over Amazon S3 and
// S3-compatible services (MinIO, Wasabi, DigitalOcean Spaces).
//
// Basic usage:
//
//	cfg := s3.Config{
//		Bucket: "my-app-files",
//		Region: "us-east-1",
//		// AccessKeyID/SecretKey optional - IAM roles are used if empty
//	}
//
//	store, err := s3.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//
//	h := filegate.New(
//		filegate.WithRoot("/uploads"),
//		filegate.WithStorage(store),
//	)
//
// MinIO and other S3-compatible services need a custom endpoint and
// path-style addressing:
//
//	cfg := s3.Config{
//		Bucket:         "my-bucket",
//		Region:         "us-east-1",
//		AccessKeyID:    "minioadmin",
//		SecretKey:      "minioadmin",
//		Endpoint:       "http://localhost:9000",
//		ForcePathStyle: true,
//	}
//
// Config fields carry env tags, so it can also be populated from the
// environment with the config package:
//
//	var cfg s3.Config
//	config.MustLoad(&cfg)
//
// Directories are simulated with key prefixes; rename is implemented as
// copy-then-delete and is not atomic across the two calls.
package s3
