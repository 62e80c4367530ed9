package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultPort            = "8000"
	DefaultCompletionURL   = "https://api.groq.com/openai/v1"
	DefaultCompletionModel = "llama-3.3-70b-versatile"
)

// Config holds everything the process reads from its environment at startup.
type Config struct {
	Port     string
	LogLevel string
	LogJSON  bool

	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string
	CallToNumber      string

	// BaseURL is the externally reachable address the telephony provider calls back on.
	BaseURL string

	CompletionAPIKey  string
	CompletionBaseURL string
	CompletionModel   string

	AllowedOrigins []string
}

func LoadEnv() error {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println(fmt.Sprintf("Could not load .env file, using process environment: %v", err))
		return err
	}
	return nil
}

func GetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required but not set", key)
	}
	return value
}

func GetEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Load reads the full configuration. Required variables terminate the process when missing.
func Load() *Config {
	return &Config{
		Port:     GetEnvOrDefault("PORT", DefaultPort),
		LogLevel: GetEnvOrDefault("LOG_LEVEL", "info"),
		LogJSON:  !strings.EqualFold(os.Getenv("LOG_FORMAT"), "text"),

		TwilioAccountSID:  GetEnv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   GetEnv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber: GetEnv("TWILIO_PHONE_NUMBER"),
		CallToNumber:      GetEnv("CALL_TO_NUMBER"),

		BaseURL: normalizeBaseURL(GetEnv("BASE_URL")),

		CompletionAPIKey:  GetEnv("GROQ_API_KEY"),
		CompletionBaseURL: GetEnvOrDefault("GROQ_BASE_URL", DefaultCompletionURL),
		CompletionModel:   GetEnvOrDefault("COMPLETION_MODEL", DefaultCompletionModel),

		AllowedOrigins: splitList(GetEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
	}
}

// CallbackURL joins a webhook path onto BaseURL.
func (c *Config) CallbackURL(path string) string {
	return c.BaseURL + "/" + strings.TrimLeft(path, "/")
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// normalizeBaseURL assumes https when the configured host carries no scheme.
func normalizeBaseURL(value string) string {
	value = strings.TrimRight(strings.TrimSpace(value), "/")
	if !strings.Contains(value, "://") {
		value = "https://" + value
	}
	return value
}
