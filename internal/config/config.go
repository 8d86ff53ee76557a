package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Cognito CognitoConfig
	Stripe  StripeConfig
	Dynamo  DynamoConfig
	Upload  UploadConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// CognitoConfig identifies the trusted token issuer. When PoolID or
// ClientID is empty the verifier cannot be constructed and every
// authenticated request fails closed with 401.
type CognitoConfig struct {
	Region   string
	PoolID   string
	ClientID string
}

// StripeConfig holds payment processor credentials.
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

// DynamoConfig holds document store table names and connection values.
type DynamoConfig struct {
	Region     string
	Endpoint   string
	CasesTable string
	UsersTable string
}

// UploadConfig controls pre-signed upload URL issuance.
type UploadConfig struct {
	Bucket     string
	KeyPrefix  string
	TTLSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	region := getEnv("AWS_REGION", "eu-west-1")

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "sca-backend"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Cognito: CognitoConfig{
			Region:   getEnv("COGNITO_REGION", region),
			PoolID:   os.Getenv("COGNITO_USER_POOL_ID"),
			ClientID: os.Getenv("COGNITO_CLIENT_ID"),
		},
		Stripe: StripeConfig{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		},
		Dynamo: DynamoConfig{
			Region:     region,
			Endpoint:   os.Getenv("DYNAMO_ENDPOINT"),
			CasesTable: getEnv("CASES_TABLE", "Cases"),
			UsersTable: getEnv("USERS_TABLE", "Users"),
		},
		Upload: UploadConfig{
			Bucket:     getEnv("UPLOAD_BUCKET", "sca-case-images"),
			KeyPrefix:  getEnv("UPLOAD_PREFIX", "uploads/"),
			TTLSeconds: getEnvAsInt("UPLOAD_URL_TTL_SECONDS", 3600),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Issuer returns the trusted token issuer URL for the configured pool.
func (c CognitoConfig) Issuer() string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", c.Region, c.PoolID)
}

// Configured reports whether the identity provider settings are present.
func (c CognitoConfig) Configured() bool {
	return c.PoolID != "" && c.ClientID != ""
}

// TTL returns the pre-signed URL lifetime.
func (u UploadConfig) TTL() time.Duration {
	if u.TTLSeconds <= 0 {
		return time.Hour
	}
	return time.Duration(u.TTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
