package middleware

import (
	"net/http"
	"strings"

	"github.com/nkalandadze/zmna-backend/pkg/ctxutil"
)

type tokenValidator interface {
	Validate(token string) (string, error)
}

// MaintainerAuth guards maintainer endpoints. Requests without a valid
// Bearer token are rejected with 401; valid ones get the token subject
// stored in the request context.
func MaintainerAuth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="maintainer"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			subject, err := validator.Validate(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithMaintainer(r.Context(), subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
