package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	FileSearch FileSearchConfig
}

type AppConfig struct {
	Port               string
	Host               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	ManifestPath       string
	UploadTmpDir       string
	ActivityTopic      string
}

// FileSearchConfig holds everything needed to talk to the remote document
// store and semantic index. APIKey and VectorStoreId may legitimately be
// empty at boot: upload/search then answer with a configuration error while
// the rest of the API keeps serving.
type FileSearchConfig struct {
	APIKey         string
	VectorStoreId  string
	Model          string
	BaseURL        string
	TimeoutSeconds int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Host:               getEnv("APP_HOST", ""),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			ManifestPath:       getEnv("MANIFEST_PATH", "./data/manifest.json"),
			UploadTmpDir:       getEnv("UPLOAD_TMP_DIR", "./uploads/tmp"),
			ActivityTopic:      getEnv("ACTIVITY_TOPIC_NAME", "DOCSEARCH_ACTIVITY"),
		},
		FileSearch: FileSearchConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			VectorStoreId:  getEnv("VECTOR_STORE_ID", ""),
			Model:          getEnv("SEARCH_MODEL", "gpt-4o-mini"),
			BaseURL:        getEnv("FILESEARCH_BASE_URL", "https://api.openai.com/v1"),
			TimeoutSeconds: getEnvAsInt("FILESEARCH_TIMEOUT_SECONDS", 60),
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
