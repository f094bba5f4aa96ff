package config

import "os"

type Config struct {
	HTTPAddr     string
	DatabaseURL  string
	Backend      string
	FixturesPath string
}

func Load() *Config {
	return &Config{
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		Backend:      getEnv("PAY_BACKEND", "mock"),
		FixturesPath: getEnv("PAY_FIXTURES", "fixtures.yaml"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
