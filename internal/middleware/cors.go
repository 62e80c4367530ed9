package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gorilla/handlers"
)

const requestHeadersHeader = "Access-Control-Request-Headers"

var corsMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
	http.MethodDelete, http.MethodOptions, http.MethodHead,
}

// CORSMiddleware allows the dashboard origins to call the API with credentials. "*" (or no origins)
// allows everyone, and the caller's origin is echoed back since credentialed requests may not see "*".
// Any request header is allowed.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	originOption := handlers.AllowedOrigins(allowedOrigins)
	anyOrigin := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*")
	if anyOrigin {
		originOption = handlers.AllowedOriginValidator(func(string) bool { return true })
	}

	return func(next http.Handler) http.Handler {
		base := handlers.CORS(originOption, handlers.AllowedMethods(corsMethods), handlers.AllowCredentials())(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if anyOrigin && r.Header.Get("Origin") != "" {
				w.Header().Add("Vary", "Origin")
			}

			requested := r.Header.Get(requestHeadersHeader)
			if requested == "" {
				base.ServeHTTP(w, r)
				return
			}

			handlers.CORS(
				originOption,
				handlers.AllowedMethods(corsMethods),
				handlers.AllowedHeaders(strings.Split(requested, ",")),
				handlers.AllowCredentials(),
			)(next).ServeHTTP(w, r)
		})
	}
}
