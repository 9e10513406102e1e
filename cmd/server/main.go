package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/studyloop/backend/internal/auth"
	"github.com/studyloop/backend/internal/content"
	"github.com/studyloop/backend/internal/database"
	"github.com/studyloop/backend/internal/gamification"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize handlers
	authHandler := auth.NewHandler(db)
	engagementService := gamification.NewService(gamification.NewStore(db))
	engagementHandler := gamification.NewHandler(engagementService)
	contentHandler := content.NewHandler(content.NewStore(db), engagementService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Middleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/engagement/session", engagementHandler.SessionStart).Methods("POST")
	protected.HandleFunc("/engagement", engagementHandler.GetEngagement).Methods("GET")
	protected.HandleFunc("/engagement/history", engagementHandler.XPHistory).Methods("GET")
	protected.HandleFunc("/streak/calendar", engagementHandler.StreakCalendar).Methods("GET")
	protected.HandleFunc("/streak/stats", engagementHandler.StreakStats).Methods("GET")
	protected.HandleFunc("/streak/warning", engagementHandler.StreakWarning).Methods("GET")
	protected.HandleFunc("/badges", engagementHandler.ListBadges).Methods("GET")
	protected.HandleFunc("/leaderboard", engagementHandler.Leaderboard).Methods("GET")

	protected.HandleFunc("/content", contentHandler.Upload).Methods("POST")
	protected.HandleFunc("/content", contentHandler.List).Methods("GET")
	protected.HandleFunc("/content/{id}/status", contentHandler.UpdateStatus).Methods("PATCH")
	protected.HandleFunc("/content/{id}/quiz-attempts", contentHandler.CompleteQuiz).Methods("POST")
	protected.HandleFunc("/content/{id}/story-chapters", contentHandler.CompleteStoryChapter).Methods("POST")
	protected.HandleFunc("/content/{id}/audio-completions", contentHandler.CompleteAudio).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
