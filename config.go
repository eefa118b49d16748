// config.go environment-driven configuration
package main

import "os"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func databasePath() string {
	return envOr("DATABASE_PATH", "portfolio.db")
}

func uploadDir() string {
	return envOr("UPLOAD_DIR", "uploads")
}

func jwtSecret() []byte {
	return []byte(envOr("JWT_SECRET", "dev-secret-change-me"))
}

func serverPort() string {
	return envOr("PORT", "8081")
}
