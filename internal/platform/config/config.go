package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration. It is constructed once at process
// start and passed by reference; nothing reads the environment at call time.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	CORSOrigin   string
	JWTIssuer    string

	// Access token signing context
	AccessTokenSecret     string
	AccessTokenExpiry     time.Duration
	AccessTokenCookieName string

	// Refresh token signing context (independent secret, longer expiry)
	RefreshTokenSecret     string
	RefreshTokenExpiry     time.Duration
	RefreshTokenCookieName string

	// BcryptCost tunes the password hashing work factor.
	BcryptCost int
}

// LoadConfig loads configuration from environment variables and a .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("CORS_ORIGIN", "http://localhost:3000")
	viper.SetDefault("JWT_ISSUER", "vidtube-backend")
	viper.SetDefault("ACCESS_TOKEN_SECRET", "insecure-access-secret-change-me")
	viper.SetDefault("ACCESS_TOKEN_EXPIRY", "15m")
	viper.SetDefault("ACCESS_TOKEN_COOKIE_NAME", "accessToken")
	viper.SetDefault("REFRESH_TOKEN_SECRET", "insecure-refresh-secret-change-me")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY", "240h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "refreshToken")
	viper.SetDefault("BCRYPT_COST", 10)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.CORSOrigin = viper.GetString("CORS_ORIGIN")
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.AccessTokenSecret = viper.GetString("ACCESS_TOKEN_SECRET")
	if cfg.AccessTokenSecret == "insecure-access-secret-change-me" {
		log.Println("Warning: ACCESS_TOKEN_SECRET not set. Using default insecure secret. NOT FOR PRODUCTION.")
	}

	accessExpiryStr := viper.GetString("ACCESS_TOKEN_EXPIRY")
	accessExpiry, err := time.ParseDuration(accessExpiryStr)
	if err != nil {
		accessExpiry = 15 * time.Minute
		log.Printf("Warning: Invalid value for ACCESS_TOKEN_EXPIRY ('%s'). Defaulting to %s.\n", accessExpiryStr, accessExpiry)
	}
	cfg.AccessTokenExpiry = accessExpiry
	cfg.AccessTokenCookieName = viper.GetString("ACCESS_TOKEN_COOKIE_NAME")

	cfg.RefreshTokenSecret = viper.GetString("REFRESH_TOKEN_SECRET")
	if cfg.RefreshTokenSecret == "insecure-refresh-secret-change-me" {
		log.Println("Warning: REFRESH_TOKEN_SECRET not set. Using default insecure secret. NOT FOR PRODUCTION.")
	}

	refreshExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY")
	refreshExpiry, err := time.ParseDuration(refreshExpiryStr)
	if err != nil {
		refreshExpiry = 240 * time.Hour
		log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY ('%s'). Defaulting to %s.\n", refreshExpiryStr, refreshExpiry)
	}
	cfg.RefreshTokenExpiry = refreshExpiry
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")

	cfg.BcryptCost = viper.GetInt("BCRYPT_COST")

	return cfg, nil
}
