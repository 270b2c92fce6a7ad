package httpx

import "context"

type ctxKey string

const CtxKeyAccountID ctxKey = "account_id"

// ContextWithAccountID is what the auth gate uses to hand the verified
// subject to downstream handlers.
func ContextWithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, CtxKeyAccountID, accountID)
}

// AccountIDFromContext returns the account id set by AuthnMiddleware.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyAccountID).(string)
	return id, ok && id != ""
}
