// Package config loads typed application configuration from environment variables.
//
// It combines github.com/joho/godotenv, which reads an optional .env file into
// the process environment, with github.com/caarlos0/env/v11, which parses the
// environment into structs annotated with `env` tags.
//
// Every configuration type is parsed once per process. Repeated Load calls for
// the same type return a copy of the cached value, so packages can load their
// own config structs independently without re-reading the environment:
//
//	type Config struct {
//		DefaultLang string        `env:"DEFAULT_LANG" envDefault:"es"`
//		Delay       time.Duration `env:"CONTACT_DELAY" envDefault:"1s"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Use LoadEnv to read additional .env files before the first Load, and Reset in
// tests that change the environment between loads.
package config
