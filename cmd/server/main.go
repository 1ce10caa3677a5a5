package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/stripe/stripe-go/v82"

	"spotmarket/internal/api"
	"spotmarket/internal/auth"
	"spotmarket/internal/repository"
	"spotmarket/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	spotRepo := repository.NewSpotRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	jobRepo := repository.NewJobRepository(db)

	stripeSvc := service.NewStripeService(
		os.Getenv("CHECKOUT_SUCCESS_URL"),
		os.Getenv("CHECKOUT_CANCEL_URL"),
	)
	senderSvc := service.NewSenderService()

	authSvc := service.NewAuthService(userRepo, jwtSecret)
	userSvc := service.NewUserService(userRepo)
	spotSvc := service.NewSpotService(spotRepo)
	reservationSvc := service.NewReservationService(reservationRepo, spotRepo, userRepo, stripeSvc, senderSvc)
	reviewSvc := service.NewReviewService(reviewRepo, spotRepo, userRepo)
	jobSvc := service.NewJobService(jobRepo)

	authHandler := api.NewAuthHandler(authSvc)
	userHandler := api.NewUserHandler(userSvc)
	spotHandler := api.NewSpotHandler(spotSvc)
	reservationHandler := api.NewReservationHandler(reservationSvc)
	reviewHandler := api.NewReviewHandler(reviewSvc)
	webhookHandler := api.NewStripeWebhookHandler(os.Getenv("STRIPE_WEBHOOK_SECRET"), reservationSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/spots", spotHandler.SearchSpots).Methods("GET")
	r.HandleFunc("/api/spots/{id}", spotHandler.GetSpot).Methods("GET")
	r.HandleFunc("/api/spots/{id}/reviews", reviewHandler.ListReviews).Methods("GET")
	r.HandleFunc("/api/spots/{id}/quote", reservationHandler.QuotePrice).Methods("GET")
	r.HandleFunc("/api/stripe/webhook", webhookHandler.HandleWebhook).Methods("POST")

	// Authenticated endpoints
	authed := r.PathPrefix("/api").Subrouter()
	authed.Use(auth.Middleware(jwtSecret))
	authed.HandleFunc("/me", userHandler.GetProfile).Methods("GET")
	authed.HandleFunc("/me", userHandler.UpdateProfile).Methods("PUT")
	authed.HandleFunc("/me/spots", spotHandler.ListMySpots).Methods("GET")
	authed.HandleFunc("/me/reservations", reservationHandler.ListMyReservations).Methods("GET")
	authed.HandleFunc("/me/spot-reservations", reservationHandler.ListOwnerReservations).Methods("GET")
	authed.HandleFunc("/spots", spotHandler.CreateSpot).Methods("POST")
	authed.HandleFunc("/spots/{id}", spotHandler.UpdateSpot).Methods("PUT")
	authed.HandleFunc("/spots/{id}", spotHandler.DeleteSpot).Methods("DELETE")
	authed.HandleFunc("/spots/{id}/reviews", reviewHandler.AddReview).Methods("POST")
	authed.HandleFunc("/spots/{id}/reservations", reservationHandler.ListSpotReservations).Methods("GET")
	authed.HandleFunc("/reservations", reservationHandler.CreateReservation).Methods("POST")
	authed.HandleFunc("/reservations/{id}", reservationHandler.GetReservation).Methods("GET")
	authed.HandleFunc("/reservations/{id}", reservationHandler.CancelReservation).Methods("DELETE")

	c := cron.New()
	c.AddFunc("@every 5m", func() {
		if err := jobSvc.AdvanceReservationLifecycle(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.AddFunc("@every 15m", func() {
		if err := jobSvc.CancelStalePendingReservations(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.Start()
	defer c.Stop()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{os.Getenv("CORS_ALLOWED_ORIGIN")}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, cors(r)))
}
