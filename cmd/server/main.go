package main

import (
	"claims-portal-api/config"
	"claims-portal-api/internal/admin"
	"claims-portal-api/internal/assistant"
	"claims-portal-api/internal/auth"
	"claims-portal-api/internal/claim"
	"claims-portal-api/internal/contact"
	"claims-portal-api/internal/content"
	"claims-portal-api/internal/document"
	"claims-portal-api/internal/logs"
	"claims-portal-api/internal/settings"
	"claims-portal-api/internal/submission"
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/genai"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.LoadConfig()

	dsn := "host=" + cfg.DBHost +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" port=" + cfg.DBPort +
		" sslmode=disable"

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://claims.settlementportal.example.com"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	logService := &logs.LogService{DB: db}
	logs.RegisterRoutes(r, logService)

	authService := &auth.AuthService{DB: db, CFG: &cfg}
	auth.RegisterRoutes(r, authService, logService)

	settingsService := &settings.SettingsService{DB: db}
	settings.RegisterRoutes(r, settingsService, logService)

	claimService := &claim.ClaimService{DB: db}
	claim.RegisterRoutes(r, claimService, settingsService, logService)

	submissionService := &submission.SubmissionService{DB: db, Claims: claimService}
	submission.RegisterRoutes(r, submissionService, logService)

	documentService := &document.DocumentService{DB: db, Claims: claimService, Bucket: cfg.StorageBucket}
	document.RegisterRoutes(r, documentService, logService)

	contentService := &content.ContentService{DB: db}
	content.RegisterRoutes(r, contentService, logService)

	contactService := &contact.ContactService{DB: db, CFG: &cfg}
	contact.RegisterRoutes(r, contactService, logService)

	adminService := &admin.AdminService{DB: db}
	admin.RegisterRoutes(r, adminService, logService)

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  cfg.GeminiProject,
		Location: cfg.GeminiLocation,
	})
	if err != nil {
		log.Println("Assistant disabled, Gemini client not available:", err)
	} else {
		assistantService := &assistant.AssistantService{Content: contentService, Client: client}
		assistant.RegisterRoutes(r, assistantService)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on 0.0.0.0:%s ...", port)
	log.Fatal(r.Run("0.0.0.0:" + port))
}
