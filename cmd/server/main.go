// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"bdaybook/internal/auth"
	"bdaybook/internal/database"
	"bdaybook/internal/handlers"
	"bdaybook/internal/middleware"
	"bdaybook/internal/session"
	"bdaybook/internal/views"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	if err := auth.Init(); err != nil {
		log.Fatalf("failed to init auth: %v", err)
	}

	ctx := context.Background()
	if err := database.Connect(ctx); err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	renderer, err := views.NewRenderer()
	if err != nil {
		log.Fatalf("failed to parse templates: %v", err)
	}

	var sessStore session.Store
	if os.Getenv("SESSION_STORE") == "memory" {
		sessStore = session.NewMemoryStore()
		logger.Info("using in-memory session store")
	} else {
		sessStore, err = session.NewRedisStore()
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
	}
	sessions := session.NewManager(sessStore)

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}
	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminHash == "" {
		log.Fatalf("ADMIN_PASSWORD_HASH is not set; generate one with cmd/hashpw")
	}

	friends := handlers.NewFriendHandler(database.NewFriendStore(database.DB), sessions, renderer, logger)
	admin := handlers.NewAuthHandler(adminEmail, adminHash, renderer, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", friends.Redirect)
	mux.HandleFunc("GET /login", admin.ShowLogin)
	mux.HandleFunc("POST /login", admin.Login)
	mux.HandleFunc("POST /logout", admin.Logout)

	// every friends action sits behind the admin gate
	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAdmin(h)
	}
	mux.Handle("GET /friends", protected(friends.Redirect))
	mux.Handle("GET /friends/manage", protected(friends.List))
	mux.Handle("GET /friends/manage/{page}", protected(friends.List))
	mux.Handle("GET /friends/create", protected(friends.ShowForm))
	mux.Handle("GET /friends/create/{id}", protected(friends.ShowForm))
	mux.Handle("POST /friends/submit/{id}", protected(friends.Submit))
	mux.Handle("GET /friends/show/{id}", protected(friends.ShowDetail))
	mux.Handle("GET /friends/delete_conf/{id}", protected(friends.ConfirmDelete))
	mux.Handle("POST /friends/submit_delete/{id}", protected(friends.SubmitDelete))
	mux.Handle("GET /friends/set_per_page/{opt}", protected(friends.SetPerPage))

	handler := middleware.LogMiddleware(logger)(middleware.EnsureSession(sessions)(mux))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
