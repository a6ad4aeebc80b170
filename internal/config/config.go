package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Keys     APIKeys
	Image    ImageConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

type APIKeys struct {
	Mapbox           string
	MemoryEventTopic string
}

type ImageConfig struct {
	MaxDimension  int
	ThumbnailSize int
	JpegQuality   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Storage: StorageConfig{
			Endpoint:      getEnv("S3_ENDPOINT", "http://localhost:9000"),
			Region:        getEnv("S3_REGION", "us-east-1"),
			Bucket:        getEnv("S3_BUCKET", "memory-images"),
			AccessKey:     getEnv("S3_ACCESS_KEY", ""),
			SecretKey:     getEnv("S3_SECRET_KEY", ""),
			PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),
		},
		Keys: APIKeys{
			Mapbox:           getEnv("MAPBOX_ACCESS_TOKEN", ""),
			MemoryEventTopic: getEnv("MEMORY_CREATED_TOPIC_NAME", "MEMORY_CREATED"),
		},
		Image: ImageConfig{
			MaxDimension:  getEnvAsInt("IMAGE_MAX_DIMENSION", 1920),
			ThumbnailSize: getEnvAsInt("IMAGE_THUMBNAIL_SIZE", 320),
			JpegQuality:   getEnvAsInt("IMAGE_JPEG_QUALITY", 80),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
