package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	JWTSecret   string
	UploadDir   string
	BaseURL     string

	// SeedAdminPassword turns on the first-boot admin seed when non-empty.
	SeedAdminPassword string
}

var App *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("⚠️  .env not found, falling back to environment variables: %v", err)
	}

	viper.AutomaticEnv()

	viper.BindEnv("PORT")
	viper.BindEnv("DATABASE_URL", "DB_URL")
	viper.BindEnv("JWT_SECRET")

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("BASE_URL", "http://localhost:8080")

	App = &Config{
		Port:              viper.GetString("PORT"),
		DatabaseURL:       viper.GetString("DATABASE_URL"),
		DBHost:            viper.GetString("DB_HOST"),
		DBPort:            viper.GetString("DB_PORT"),
		DBUser:            viper.GetString("DB_USER"),
		DBPassword:        viper.GetString("DB_PASSWORD"),
		DBName:            viper.GetString("DB_NAME"),
		JWTSecret:         viper.GetString("JWT_SECRET"),
		UploadDir:         viper.GetString("UPLOAD_DIR"),
		BaseURL:           viper.GetString("BASE_URL"),
		SeedAdminPassword: viper.GetString("SEED_ADMIN_PASSWORD"),
	}

	log.Printf("Configuration loaded:")
	log.Printf("- Port: %s", App.Port)
	log.Printf("- Database URL: %s", func() string {
		if App.DatabaseURL != "" {
			return "SET"
		}
		return "NOT SET"
	}())
	log.Printf("- JWT Secret: %s", func() string {
		if App.JWTSecret != "" {
			return "SET"
		}
		return "NOT SET"
	}())
	log.Printf("- Upload Dir: %s", App.UploadDir)
	log.Printf("- Base URL: %s", App.BaseURL)
}
