package config

import (
	"os"
	"strconv"
)

// FromEnv builds a Config from environment variables. It is merged under
// file and flag values so the environment acts as the lowest-priority
// source after built-in defaults.
func FromEnv() Config {
	return Config{
		TaxonomyPath: getEnvString("TAXONOMY_PATH", ""),
		DatabaseURL:  getEnvString("DATABASE_URL", ""),
		SQLitePath:   getEnvString("SQLITE_PATH", ""),
		RedisURL:     getEnvString("REDIS_URL", ""),
		CacheTTL:     getEnvString("CACHE_TTL", ""),
		S3Bucket:     getEnvString("S3_BUCKET", ""),
		S3Endpoint:   getEnvString("S3_ENDPOINT", ""),
		S3Region:     getEnvString("S3_REGION", DefaultS3Region),
		AMQPURL:      getEnvString("AMQP_URL", ""),
		QueueName:    getEnvString("QUEUE_NAME", DefaultQueueName),
		Port:         getEnvInt("PORT", DefaultPort),
		Lemmatize:    getEnvBool("LEMMATIZE", false),
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
