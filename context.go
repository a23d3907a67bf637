package gateway

import "context"

type identityContextKey struct{}
type sourceContextKey struct{}

// WithIdentity attaches a resolved identity and its transport to ctx.
func WithIdentity(ctx context.Context, id Identity, source CredentialSource) context.Context {
	ctx = context.WithValue(ctx, identityContextKey{}, id)
	return context.WithValue(ctx, sourceContextKey{}, source)
}

// IdentityFromContext returns the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}

// SourceFromContext returns the credential transport stored by WithIdentity.
func SourceFromContext(ctx context.Context) CredentialSource {
	if ctx == nil {
		return SourceNone
	}
	src, _ := ctx.Value(sourceContextKey{}).(CredentialSource)
	return src
}
