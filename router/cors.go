package router

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows cross-origin requests from origin and answers preflight
// requests itself. An empty origin returns next unchanged.
func CORS(origin string, next http.Handler) http.Handler {
	if origin == "" {
		return next
	}

	return cors.New(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
	}).Handler(next)
}
