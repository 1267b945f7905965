package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"

	"eshop_back_end/internal/config"
	"eshop_back_end/internal/database"
	"eshop_back_end/internal/routes"
	"eshop_back_end/internal/services"
)

func main() {
	config.Load()

	stripe.Key = config.Get("STRIPE_SECRET_KEY", "")
	if stripe.Key == "" {
		log.Println("⚠️ STRIPE_SECRET_KEY manquant — paiement carte désactivé")
	} else {
		log.Println("✅ Stripe initialisé")
	}

	database.ConnectDatabases()
	services.ConnectMinio(context.Background())

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.Get("FRONTEND_URL", "http://localhost:3000")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.RegisterRoutes(r)

	port := config.Get("PORT", "8080")

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Println("🚀 Serveur E-Shop lancé sur le port", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("❌ Erreur serveur: %v", err)
	}
}
