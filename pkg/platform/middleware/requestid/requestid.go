// Package requestid provides middleware for request correlation IDs.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"fotogate/pkg/requestcontext"
)

// Header is the HTTP header carrying the request ID, inbound and outbound.
const Header = "X-Request-Id"

// Middleware assigns each request a correlation ID. An inbound X-Request-Id
// header is trusted if present so callers can trace across services; otherwise
// a fresh UUID is minted. The ID is stored in the context and echoed back.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		ctx := requestcontext.WithRequestID(r.Context(), id)
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
