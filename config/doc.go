// Package config provides type-safe environment variable loading with
// per-type caching. It automatically loads a .env file on first use and
// parses variables into struct fields via `env` tags.
//
//	type StorageConfig struct {
//		Root   string `env:"FILEGATE_ROOT,required"`
//		Expect int    `env:"FILEGATE_EXPECT" envDefault:"0"`
//	}
//
//	var cfg StorageConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Each configuration type is loaded once per process lifetime; repeated Load
// calls for the same type return the cached value.
package config
