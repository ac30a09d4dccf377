package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/krishimitre/krishimitre/internal/server/auth"
)

type contextKey string

const farmerIDKey contextKey = "farmerID"

// bearerAuth requires a valid "Authorization: Bearer <token>" header and
// stores the authenticated farmer's ID in the request context.
func bearerAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeMessage(w, http.StatusUnauthorized, "Authorization required")
				return
			}

			farmerID, err := auth.GetFarmerIDFromToken(token, secret)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), farmerIDKey, farmerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// farmerIDFromContext returns the ID set by bearerAuth.
func farmerIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(farmerIDKey).(string)
	return id
}
