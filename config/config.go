// Package config resolves all runtime configuration from environment
// variables, once, at startup. Every component receives the piece of
// configuration it needs through its constructor instead of reading the
// environment on its own.
package config

import "os"

// Placeholder values mark unconfigured Paymob credentials. When the API key
// is still the placeholder, the whole gateway runs in mock mode.
const (
	PlaceholderAPIKey              = "placeholder_api_key"
	PlaceholderHMAC                = "placeholder_hmac"
	PlaceholderMerchantID          = "placeholder_merchant_id"
	PlaceholderIntegrationIDCard   = "placeholder_integration_id_card"
	PlaceholderIntegrationIDWallet = "placeholder_integration_id_wallet"
)

type Config struct {
	Port      string
	JWTSecret string
	Paymob    PaymobConfig
	AWS       AWSConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
}

type PaymobConfig struct {
	APIKey              string
	HMACSecret          string
	MerchantID          string
	IntegrationIDCard   string
	IntegrationIDWallet string
}

// IsMock reports whether the gateway credentials are still placeholders.
// There is no partial-mock state: the API key alone decides.
func (c PaymobConfig) IsMock() bool {
	return c.APIKey == PlaceholderAPIKey
}

type AWSConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	BasePath        string
	PublicRead      bool
}

// Configured reports whether enough AWS settings are present to presign URLs.
func (c AWSConfig) Configured() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != "" && c.Bucket != ""
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type KafkaConfig struct {
	Broker string
	Topic  string
}

func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Paymob: PaymobConfig{
			APIKey:              getEnv("PAYMOB_API_KEY", PlaceholderAPIKey),
			HMACSecret:          getEnv("PAYMOB_HMAC", PlaceholderHMAC),
			MerchantID:          getEnv("PAYMOB_MERCHANT_ID", PlaceholderMerchantID),
			IntegrationIDCard:   getEnv("PAYMOB_INTEGRATION_ID_CARD", PlaceholderIntegrationIDCard),
			IntegrationIDWallet: getEnv("PAYMOB_INTEGRATION_ID_WALLET", PlaceholderIntegrationIDWallet),
		},
		AWS: AWSConfig{
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Region:          getEnv("AWS_REGION", "eu-west-1"),
			Bucket:          getEnv("AWS_BUCKET", ""),
			BasePath:        getEnv("AWS_BASE_PATH", "Nor/"),
			PublicRead:      getEnv("AWS_PUBLIC_READ", "") == "true",
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "norydb"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Kafka: KafkaConfig{
			Broker: getEnv("KAFKA_BROKER", "localhost:9092"),
			Topic:  getEnv("KAFKA_TOPIC", "order_events"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
