package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "linguachat/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(conversationHandler *ConversationHandler, adminHandler *AdminHandler) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	// These are applied to every request.
	r.Use(middleware.RequestID) // Injects a unique request ID into the context.
	r.Use(middleware.RealIP)    // Sets the remote address to the real IP from proxy headers.
	r.Use(middleware.Logger)    // Logs the start and end of each request with useful info.
	r.Use(middleware.Recoverer) // Recovers from panics and returns a 500 error.

	// Serves the auto-generated Swagger UI for API documentation.
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// A simple health check endpoint for container orchestration probes.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// --- API Version 1 Routes ---
	r.Route("/api/v1", func(r chi.Router) {

		// Standard JSON routes get a request timeout so client connections
		// cannot hang indefinitely.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(15 * time.Second))

			// --- Sessions ---
			r.Post("/sessions", conversationHandler.CreateSession)
			r.Get("/sessions/{sessionID}", conversationHandler.GetSession)

			// --- Files ---
			r.Post("/sessions/{sessionID}/files", conversationHandler.UploadFile)
			r.Delete("/sessions/{sessionID}/files", conversationHandler.ClearFile)

			// --- Credential & usage ---
			r.Post("/credential", conversationHandler.UpdateCredential)
			r.Get("/usage", conversationHandler.GetUsage)

			// --- Analytics ---
			r.Get("/records", adminHandler.ListMyRecords)
			r.Get("/admin/records", adminHandler.ListRecords)
			r.Get("/admin/stats", adminHandler.GetStats)
		})

		// Message submission waits on the generation provider, so it gets a
		// longer leash than the plain JSON routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(120 * time.Second))
			r.Post("/sessions/{sessionID}/messages", conversationHandler.SubmitMessage)
		})
	})

	// --- Frontend File Server ---
	// Serves the static frontend for simplified local development. In a
	// typical production deployment this is handled by a reverse proxy.
	fileServer := http.FileServer(http.Dir("./frontend/dist"))
	r.Handle("/*", http.StripPrefix("/", fileServer))

	return r
}
