package booking

import "context"

type contextKey string

const userKey contextKey = "userID"

// NewContextWithUser records the caller identity asserted by the identity
// provider. The value is opaque to the ledger.
func NewContextWithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

func UserFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userKey).(string)

	return userID, ok && userID != ""
}
