package http

import (
	"net/http"
	"strings"

	"github.com/newcreaturechurch/church-api/internal/church/domain"
	"github.com/newcreaturechurch/church-api/internal/church/service"
	"github.com/newcreaturechurch/church-api/pkg/httpx"
)

// Gate implements the request authentication middleware. Every failure mode
// maps to a distinct code so clients can tell a missing header from a bad
// token from a dead account.
type Gate struct {
	Sessions *service.SessionService
}

// bearerToken extracts the token from the Authorization header. The second
// return names the failure code when extraction fails.
func bearerToken(r *http.Request) (string, string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", codeNoToken
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", codeInvalidFormat
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", codeEmptyToken
	}
	return token, ""
}

// RequireAuth admits only requests carrying a verifiable access token for a
// live account. The identity lands in the request context.
func (g *Gate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, code := bearerToken(r)
		if code != "" {
			switch code {
			case codeNoToken:
				httpx.WriteError(w, http.StatusUnauthorized, codeNoToken, "Access denied. No token provided")
			case codeInvalidFormat:
				httpx.WriteError(w, http.StatusUnauthorized, codeInvalidFormat, "Invalid authorization format. Use: Bearer <token>")
			default:
				httpx.WriteError(w, http.StatusUnauthorized, codeEmptyToken, "Access denied. Token is empty")
			}
			return
		}

		user, err := g.Sessions.VerifyAccess(r.Context(), token)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), user.Identity())))
	})
}

// OptionalAuth attaches an identity when a valid token is presented but lets
// the request through anonymous otherwise. No failure here is ever reported;
// a bad token simply means an anonymous view.
func (g *Gate) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, code := bearerToken(r); code == "" {
			if user, err := g.Sessions.VerifyAccess(r.Context(), token); err == nil {
				r = r.WithContext(withIdentity(r.Context(), user.Identity()))
			}
		}
		next.ServeHTTP(w, r)
	})
}

type permissionDenied struct {
	Error         string   `json:"error"`
	Code          string   `json:"code"`
	CurrentRole   string   `json:"currentRole"`
	RequiredRoles []string `json:"requiredRoles"`
}

// RequireRole gates a route to the given roles. Must run inside RequireAuth.
func (g *Gate) RequireRole(roles ...domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFrom(r.Context())
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, codeAuthRequired, "Authentication required")
				return
			}

			for _, role := range roles {
				if id.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			required := make([]string, len(roles))
			for i, role := range roles {
				required[i] = role.String()
			}
			httpx.WriteJSON(w, http.StatusForbidden, permissionDenied{
				Error:         "You do not have permission to access this resource",
				Code:          codeInsufficientPerms,
				CurrentRole:   id.Role.String(),
				RequiredRoles: required,
			})
		})
	}
}

// RequireAdminOrPastor gates a route to church staff.
func (g *Gate) RequireAdminOrPastor() httpx.Middleware {
	return g.RequireRole(domain.RoleAdmin, domain.RolePastor)
}
