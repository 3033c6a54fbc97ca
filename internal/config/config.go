package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates the service configuration.
type Config struct {
	Server ServerConfig
	Auth   AuthConfig
	Upload UploadConfig
	Chat   ChatConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	upload, err := loadUploadConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		Auth:   loadAuthConfig(),
		Upload: upload,
		Chat:   chat,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AuthConfig holds the token-signing secret.
type AuthConfig struct {
	JWTSecret string
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: getEnvOrDefault("JWT_SECRET", "your-secret-key"),
	}
}

// UploadConfig describes the file upload store.
type UploadConfig struct {
	Dir     string
	MaxSize int64
}

func loadUploadConfig() (UploadConfig, error) {
	maxSize := int64(10 << 20) // 10 MiB
	if override, err := parseOptionalIntEnv("MAX_UPLOAD_SIZE"); err != nil {
		return UploadConfig{}, err
	} else if override != nil {
		if *override <= 0 {
			return UploadConfig{}, fmt.Errorf("MAX_UPLOAD_SIZE must be positive, got %d", *override)
		}
		maxSize = int64(*override)
	}

	return UploadConfig{
		Dir:     getEnvOrDefault("UPLOAD_DIR", "./uploads"),
		MaxSize: maxSize,
	}, nil
}

// ChatConfig describes hub-facing tunables.
type ChatConfig struct {
	HistoryLimit  int
	AllowedOrigin string
}

func loadChatConfig() (ChatConfig, error) {
	limit := 50
	if override, err := parseOptionalIntEnv("HISTORY_LIMIT"); err != nil {
		return ChatConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return ChatConfig{}, fmt.Errorf("HISTORY_LIMIT must be at least 1, got %d", *override)
		}
		limit = *override
	}

	return ChatConfig{
		HistoryLimit:  limit,
		AllowedOrigin: getEnvOrDefault("CORS_ORIGIN", "http://localhost:4200"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
