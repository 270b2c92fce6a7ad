package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/devconnect/pkg/slogx"
)

// DefaultTokenHeader is the header the web client sends its session token in.
const DefaultTokenHeader = "x-auth-token"

// TokenVerifier resolves a raw session token to the account id it was
// issued for.
type TokenVerifier interface {
	Verify(token string) (accountID string, err error)
}

// AuthnMiddleware is the auth gate for protected routes. The token is read
// from header (DefaultTokenHeader when empty), falling back to an
// "Authorization: Bearer" header. Every failure is answered with the same
// 401 body; the cause is only logged.
func AuthnMiddleware(v TokenVerifier, header string) Middleware {
	if header == "" {
		header = DefaultTokenHeader
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := ExtractToken(r, header)
			if raw == "" {
				WriteUnauthorized(w)
				return
			}

			accountID, err := v.Verify(raw)
			if err != nil {
				log.Warn("session token rejected", "err", err)
				WriteUnauthorized(w)
				return
			}

			ctx = ContextWithAccountID(ctx, accountID)
			ctx = slogx.WithAccount(ctx, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractToken returns the token from header, or from a bearer
// Authorization header, or "".
func ExtractToken(r *http.Request, header string) string {
	if raw := strings.TrimSpace(r.Header.Get(header)); raw != "" {
		return raw
	}

	authz := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(authz, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
