package handler

import (
	"net/http"

	"github.com/msomdec/projecthub/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Registration is
// throttled per client address by limiter.
func RegisterRoutes(mux *http.ServeMux, accounts *AccountHandler, limiter *service.TokenBucket) {
	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.Handle("POST /api/accounts/register", RateLimit(limiter, http.HandlerFunc(accounts.HandleRegister)))
}
