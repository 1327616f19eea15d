// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

type QdrantConfig struct {
	Host string
	Port int
}

type TypesenseConfig struct {
	Host   string
	Port   int
	APIKey string
}

// SocialConfig holds social-listening provider settings. Enrichment is
// skipped entirely when no API key is configured.
type SocialConfig struct {
	APIKey  string
	BaseURL string
}

type Config struct {
	Port              string
	Environment       string
	InngestEventKey   string
	InngestSigningKey string

	OpenAIAPIKey    string
	OpenAIModel     string
	AnthropicAPIKey string
	AnthropicModel  string

	PerplexityAPIKey  string
	PerplexityModel   string
	PerplexityBaseURL string

	DeepResearchAPIKey  string
	DeepResearchBaseURL string
	DeepResearchModel   string

	Social SocialConfig

	DatabaseURL string
	Database    DatabaseConfig
	Qdrant      QdrantConfig
	Typesense   TypesenseConfig
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

func Load() *Config {
	config := &Config{
		Port:              getEnv("PORT", "8000"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		InngestEventKey:   os.Getenv("INNGEST_EVENT_KEY"),
		InngestSigningKey: os.Getenv("INNGEST_SIGNING_KEY"),

		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4.1"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),

		PerplexityAPIKey:  os.Getenv("PERPLEXITY_API_KEY"),
		PerplexityModel:   getEnv("PERPLEXITY_MODEL", "sonar"),
		PerplexityBaseURL: os.Getenv("PERPLEXITY_BASE_URL"),

		DeepResearchAPIKey:  os.Getenv("DEEP_RESEARCH_API_KEY"),
		DeepResearchBaseURL: getEnv("DEEP_RESEARCH_BASE_URL", "https://api.openai.com/v1"),
		DeepResearchModel:   getEnv("DEEP_RESEARCH_MODEL", "o3-deep-research"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	config.Social = SocialConfig{
		APIKey:  os.Getenv("SOCIAL_API_KEY"),
		BaseURL: getEnv("SOCIAL_BASE_URL", "https://api.brandwatch.com/v1"),
	}

	// Parse database configuration
	dbConfig, err := parseDatabaseConfig()
	if err != nil {
		// If DATABASE_URL parsing fails, try individual env vars as fallback
		dbConfig = DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "brandpulse"),
			SSLMode:         getEnv("DB_SSLMODE", "require"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getEnvInt("DB_CONN_MAX_LIFETIME", 300),
		}
	}
	config.Database = dbConfig

	config.Qdrant = QdrantConfig{
		Host: getEnv("QDRANT_HOST", "qdrant"),
		Port: getEnvInt("QDRANT_PORT", 6334),
	}
	config.Typesense = TypesenseConfig{
		Host:   getEnv("TYPESENSE_HOST", "typesense"),
		Port:   getEnvInt("TYPESENSE_PORT", 8108),
		APIKey: getEnv("TYPESENSE_API_KEY", "xyz"),
	}

	return config
}

func parseDatabaseConfig() (DatabaseConfig, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return DatabaseConfig{}, fmt.Errorf("DATABASE_URL not set")
	}

	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return DatabaseConfig{}, fmt.Errorf("invalid DATABASE_URL: %w", err)
	}

	config := DatabaseConfig{
		Host:            parsedURL.Hostname(),
		Port:            5432, // default
		User:            parsedURL.User.Username(),
		Name:            parsedURL.Path[1:], // remove leading slash
		SSLMode:         getEnv("DB_SSLMODE", "require"),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 25),
		ConnMaxLifetime: getEnvInt("DB_CONN_MAX_LIFETIME", 300),
	}

	if password, ok := parsedURL.User.Password(); ok {
		config.Password = password
	}

	if parsedURL.Port() != "" {
		if port, err := strconv.Atoi(parsedURL.Port()); err == nil {
			config.Port = port
		}
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
