package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tavolo/availability"
	"tavolo/billing"
	"tavolo/cart"
	"tavolo/checkout"
	"tavolo/feed"
	"tavolo/globals"
	"tavolo/mq"
	"tavolo/notify"
	"tavolo/orders"
	"tavolo/payments"
	"tavolo/ratelim"
	"tavolo/routes"
	"tavolo/settings"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, duration)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	rateLimiter := ratelim.NewRateLimiter()

	// order feed hub plus the Redis worker that feeds it
	hub := feed.NewHub()
	go hub.Run()
	go mq.StartOrderEventWorker(hub)

	// shared collaborators
	orderStore := orders.NewMongoStore()
	settingsStore := settings.NewMongoStore()
	capability := billing.NewMongoResolver()
	mailer := notify.NewMailer()

	cartStore := cart.NewSessionStore()
	checkoutSvc := checkout.NewService(orderStore, settingsStore, capability)
	ordersSvc := orders.NewService(orderStore)
	paymentsSvc := payments.NewService(
		orderStore,
		payments.NewMongoSessionStore(),
		payments.NewMongoRestaurantNames(),
		payments.NewMollieProvider(),
		mailer,
		payments.RedisNotifyGuard{},
		globals.EnvOr("PAYMENT_RETURN_URL", "http://localhost:5173/payment/return"),
	)

	router := httprouter.New()
	router.GET("/health", Index)

	routes.AddCartRoutes(router, cart.NewHandlers(cartStore))
	routes.AddAvailabilityRoutes(router, availability.NewHandlers(settingsStore))
	routes.AddCheckoutRoutes(router, rateLimiter, checkout.NewHandlers(checkoutSvc, cartStore))
	routes.AddPaymentRoutes(router, rateLimiter, payments.NewHandlers(paymentsSvc))
	routes.AddOrderRoutes(router, orders.NewHandlers(ordersSvc, capability))
	routes.AddSettingsRoutes(router, settings.NewHandlers(settingsStore, capability))
	routes.AddFeedRoutes(router, hub)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Guest-Token"},
		ExposedHeaders:   []string{"X-Guest-Token"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		log.Println("Shutting down order feed hub...")
		hub.Stop()
	})

	go func() {
		log.Printf("Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly")
}
