package gateway

import "errors"

var (
	// ErrNotAuthenticated means neither credential transport produced an identity.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrForbidden means the identity's role is not in the route's allow-list.
	ErrForbidden = errors.New("forbidden")
	// ErrIncompleteIdentity is returned when issuing a credential for an identity without
	// a username or a positive role id.
	ErrIncompleteIdentity = errors.New("incomplete identity")
	// ErrInvalidConfig wraps every Config.Validate failure.
	ErrInvalidConfig = errors.New("invalid gateway config")
	// ErrGatewayNotReady is returned by methods called on a nil or unbuilt Gateway.
	ErrGatewayNotReady = errors.New("gateway not ready")
	// ErrSessionStoreUnavailable wraps session store failures when starting or ending a
	// session.
	ErrSessionStoreUnavailable = errors.New("session store unavailable")
)
