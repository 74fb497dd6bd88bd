package middleware

import (
	"net/http"

	"github.com/google/uuid"

	goToken "github.com/MrEthical07/goToken"
)

const correlationHeader = "X-Correlation-ID"

// CorrelationID propagates the X-Correlation-ID request header, generating a
// fresh uuid when the client sent none. The id is echoed on the response and
// attached to the request context so engine audit events carry it.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get(correlationHeader)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		w.Header().Set(correlationHeader, correlationID)

		ctx := goToken.WithCorrelationID(r.Context(), correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
