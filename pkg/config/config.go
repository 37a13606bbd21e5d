package config

import (
	"os"
)

// Discord configuration struct.
type DiscordConfiguration struct {
	Token string
}

// Riot configuration struct.
type RiotConfiguration struct {
	ApiKey        string
	DefaultServer string
	Region        string
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// Bucket configuration for the command audit log upload.
type BucketConfiguration struct {
	AccessKey    string
	AccessSecret string
	Endpoint     string
	LogBucket    string
	Region       string
}

var (
	Discord DiscordConfiguration
	Riot    RiotConfiguration
	Redis   RedisConfiguration
	Bucket  BucketConfiguration
)

// Load the variables.
func LoadEnv() {
	// Load the Discord configuration.
	Discord.Token = os.Getenv("DISCORD_TOKEN")

	// Load the Riot configuration.
	Riot.ApiKey = os.Getenv("RIOT_TOKEN")
	Riot.DefaultServer = getEnvOrDefault("SERVER", "EUNE")
	Riot.Region = getEnvOrDefault("REGION", "europe")

	// Load the Redis configuration.
	Redis.Host = os.Getenv("REDIS_HOST")
	Redis.Port = os.Getenv("REDIS_PORT")
	Redis.Password = os.Getenv("REDIS_PASSWORD")

	// Load the bucket configuration.
	Bucket.AccessKey = os.Getenv("BUCKET_ACCESS_KEY")
	Bucket.AccessSecret = os.Getenv("BUCKET_ACCESS_SECRET")
	Bucket.Endpoint = os.Getenv("BUCKET_ENDPOINT")
	Bucket.LogBucket = os.Getenv("BUCKET_LOG_BUCKET")
	Bucket.Region = os.Getenv("BUCKET_REGION")
}

// Return the environment variable if set, else the default.
func getEnvOrDefault(key string, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}
