package config

import "os"

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string

	StorageBucket string

	GmailUser    string
	GmailPass    string
	ContactInbox string

	GeminiProject  string
	GeminiLocation string
}

func LoadConfig() Config {
	return Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		StorageBucket: os.Getenv("STORAGE_BUCKET"),

		GmailUser:    os.Getenv("GMAIL_USER"),
		GmailPass:    os.Getenv("GMAIL_APP_PASSWORD"),
		ContactInbox: os.Getenv("CONTACT_INBOX"),

		GeminiProject:  os.Getenv("GEMINI_PROJECT"),
		GeminiLocation: os.Getenv("GEMINI_LOCATION"),
	}
}
