package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter sets up the shared middleware. The request timeout is applied
// per route group by the handlers, not globally: the feed websocket is a
// long-lived connection and must not sit under a timeout.
func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// Timeout wraps the plain request/response routes.
func Timeout() func(http.Handler) http.Handler {
	return middleware.Timeout(15 * time.Second)
}
