package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Auth
	JWTSecret       string `yaml:"JWT_SECRET"`
	AppPassword     string `yaml:"APP_PASSWORD"`
	AppPasswordHash string `yaml:"APP_PASSWORD_HASH"`

	// Server
	AppPort string `yaml:"APP_PORT"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration (receipt image archive)
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Anthropic API configuration
	AnthropicAPIKey string `yaml:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `yaml:"ANTHROPIC_MODEL"`

	// Logging
	LogLevel string `yaml:"LOG_LEVEL"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}

	// Environment variables override the file so Docker deployments work
	// without a config.yaml.
	overrides := map[string]*string{
		"DB_USER":            &config.DBUser,
		"DB_NAME":            &config.DBName,
		"DB_PASSWORD":        &config.DBPassword,
		"DB_PORT":            &config.DBPort,
		"DB_HOST":            &config.DBHost,
		"JWT_SECRET":         &config.JWTSecret,
		"APP_PASSWORD":       &config.AppPassword,
		"APP_PASSWORD_HASH":  &config.AppPasswordHash,
		"APP_PORT":           &config.AppPort,
		"APP_URL":            &config.AppURL,
		"SMTP_HOST":          &config.SMTPHost,
		"SMTP_PORT":          &config.SMTPPort,
		"SMTP_SENDER_NAME":   &config.SMTPSenderName,
		"SMTP_AUTH_EMAIL":    &config.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD": &config.SMTPAuthPassword,
		"AWS_S3_BUCKET":      &config.AWSS3Bucket,
		"AWS_S3_REGION":      &config.AWSS3Region,
		"AWS_ACCESS_KEY":     &config.AWSAccessKey,
		"AWS_SECRET_KEY":     &config.AWSSecretKey,
		"ANTHROPIC_API_KEY":  &config.AnthropicAPIKey,
		"ANTHROPIC_MODEL":    &config.AnthropicModel,
		"LOG_LEVEL":          &config.LogLevel,
	}
	for key, dst := range overrides {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
}

func GetConfig(key string) string {
	switch key {
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "APP_PASSWORD":
		return config.AppPassword
	case "APP_PASSWORD_HASH":
		return config.AppPasswordHash
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "ANTHROPIC_API_KEY":
		return config.AnthropicAPIKey
	case "ANTHROPIC_MODEL":
		return config.AnthropicModel
	case "LOG_LEVEL":
		return config.LogLevel
	default:
		return ""
	}
}
