package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	JWTSecret  string
	JWTExpiry  string

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayAPIURL    string

	CacheTTL         time.Duration
	MaxCartQuantity  int
	SavedItemTTLDays int
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "30m"))
	if err != nil {
		log.Printf("Invalid CACHE_TTL, falling back to 30m: %v", err)
		cacheTTL = 30 * time.Minute
	}

	maxCartQty, _ := strconv.Atoi(getEnv("MAX_CART_QUANTITY", "10"))
	savedDays, _ := strconv.Atoi(getEnv("SAVED_ITEM_TTL_DAYS", "90"))
	if savedDays <= 0 {
		savedDays = 90
	}

	AppConfig = &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		Port:       getEnv("APP_PORT", getEnv("PORT", "8080")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "sparkle_shop"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		JWTExpiry:  getEnv("JWT_EXPIRY", "24h"),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayAPIURL:    getEnv("RAZORPAY_API_URL", "https://api.razorpay.com/v1"),

		CacheTTL:         cacheTTL,
		MaxCartQuantity:  maxCartQty,
		SavedItemTTLDays: savedDays,
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
