package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Session   SessionConfig
	Geofence  GeofenceConfig
	Google    GoogleConfig
	Twilio    TwilioConfig
	Redis     RedisConfig
	MongoDB   MongoDBConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type SessionConfig struct {
	TTL            time.Duration
	PrivilegedTTL  time.Duration
	PrivilegedUser string
}

type GeofenceConfig struct {
	RadiusMeters float64
}

type GoogleConfig struct {
	APIKey  string
	BaseURL string
	Region  string
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	ToNumber   string
	TwimlURL   string
	BaseURL    string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

// Configured reports whether Twilio credentials are present; without them the
// alert dispatcher degrades to a logged no-op.
func (t TwilioConfig) Configured() bool {
	return t.AccountSID != "" && t.AuthToken != ""
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8008")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("SESSION_TTL_SECONDS", 300)
	viper.SetDefault("SESSION_PRIVILEGED_TTL_SECONDS", 7200)
	viper.SetDefault("SESSION_PRIVILEGED_USER", "jollypolly")
	viper.SetDefault("GEOFENCE_RADIUS_METERS", 2000.0)
	viper.SetDefault("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com")
	viper.SetDefault("GOOGLE_PLACES_REGION", "in")
	viper.SetDefault("TWILIO_BASE_URL", "https://api.twilio.com")
	viper.SetDefault("TWILIO_TWIML_URL", "https://handler.twilio.com/twiml/EH717d0e56cd5b9578b06f3f7446f15a46")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Session: SessionConfig{
			TTL:            time.Duration(viper.GetInt("SESSION_TTL_SECONDS")) * time.Second,
			PrivilegedTTL:  time.Duration(viper.GetInt("SESSION_PRIVILEGED_TTL_SECONDS")) * time.Second,
			PrivilegedUser: viper.GetString("SESSION_PRIVILEGED_USER"),
		},
		Geofence: GeofenceConfig{
			RadiusMeters: viper.GetFloat64("GEOFENCE_RADIUS_METERS"),
		},
		Google: GoogleConfig{
			APIKey:  os.Getenv("GOOGLE_API_KEY"),
			BaseURL: viper.GetString("GOOGLE_PLACES_BASE_URL"),
			Region:  viper.GetString("GOOGLE_PLACES_REGION"),
		},
		Twilio: TwilioConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			FromNumber: viper.GetString("TWILIO_PHONE_NUMBER"),
			ToNumber:   viper.GetString("MY_PHONE_NUMBER"),
			TwimlURL:   viper.GetString("TWILIO_TWIML_URL"),
			BaseURL:    viper.GetString("TWILIO_BASE_URL"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	// Basic validation
	if cfg.Google.APIKey == "" {
		log.Println("WARNING: GOOGLE_API_KEY is not set; destination lookups will fail")
	}
	if !cfg.Twilio.Configured() {
		log.Println("WARNING: Twilio credentials not found; arrival calls will not be placed")
	}

	return cfg, nil
}
