package auth

import "context"

type contextKey string

const (
	contextKeyTokens  contextKey = "auth.tokens"
	contextKeyAdminID contextKey = "auth.admin_id"
)

// WithIdentity stores the request's token store and admin id in context.
func WithIdentity(ctx context.Context, tokens TokenStore, adminID string) context.Context {
	ctx = context.WithValue(ctx, contextKeyTokens, tokens)
	ctx = context.WithValue(ctx, contextKeyAdminID, adminID)
	return ctx
}

// TokensFromContext extracts the token store.
func TokensFromContext(ctx context.Context) TokenStore {
	if ctx == nil {
		return nil
	}
	if tokens, ok := ctx.Value(contextKeyTokens).(TokenStore); ok {
		return tokens
	}
	return nil
}

// AdminIDFromContext extracts the signed-in admin's id, empty when unknown.
func AdminIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if adminID, ok := ctx.Value(contextKeyAdminID).(string); ok {
		return adminID
	}
	return ""
}
