package middleware

import (
	"context"
	"net/http"
	"strings"

	goToken "github.com/MrEthical07/goToken"
)

type claimsContextKey struct{}

// ClaimsFromContext returns the validated access claims stored by [Guard].
func ClaimsFromContext(ctx context.Context) (*goToken.AccessClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*goToken.AccessClaims)
	return claims, ok
}

// Guard validates the Authorization bearer token on every request and stores
// the decoded claims in the request context. All validation failures map to
// a bare 401.
func Guard(engine *goToken.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := engine.Validate(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
