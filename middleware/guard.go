package middleware

import (
	"net/http"

	gateway "github.com/AdolfoCB/almapac-gateway"
	"github.com/AdolfoCB/almapac-gateway/permission"
	"github.com/AdolfoCB/almapac-gateway/response"
)

// Require returns middleware that lets a request through only when its caller's role is
// one of roles. Role ids are fixed per route, so an id outside 0..255 panics at setup.
func Require(gw *gateway.Gateway, roles ...int) func(http.Handler) http.Handler {
	return RequireSet(gw, permission.Roles(roles...))
}

// RequireAuthenticated lets any authenticated caller through.
func RequireAuthenticated(gw *gateway.Gateway) func(http.Handler) http.Handler {
	return RequireSet(gw, permission.Any())
}

// RequireSet is Require with a prebuilt allow-list.
func RequireSet(gw *gateway.Gateway, allow permission.RoleSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gw == nil {
				_ = response.Write(w, response.InternalError())
				return
			}

			id, source, failure, ok := gw.GuardSource(r, allow)
			if !ok {
				_ = response.Write(w, failure)
				return
			}

			ctx := gateway.WithIdentity(r.Context(), id, source)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
