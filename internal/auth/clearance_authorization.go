package auth

import (
	"log/slog"
	"net/http"

	"github.com/ouroboros-foundation/portal/internal/clearance"
)

// ClearanceAuthorization builds route middleware that gates handlers on the
// authenticated user's clearance level or capability tags. Resource-level
// decisions (which project, which report) stay in the services via the
// access evaluator; this layer only guards whole routes.
type ClearanceAuthorization struct {
	logger *slog.Logger
}

func NewClearanceAuthorization(logger *slog.Logger) *ClearanceAuthorization {
	return &ClearanceAuthorization{logger: logger}
}

// RequireClearance gates a route on a minimum clearance level.
func (ca *ClearanceAuthorization) RequireClearance(required clearance.Level) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				ca.logger.Warn("clearance check failed: user not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.Clearance.Meets(required) {
				ca.logger.WarnContext(r.Context(), "access denied: insufficient clearance",
					"user_id", user.ID,
					"user_clearance", user.Clearance,
					"required_clearance", required)
				http.Error(w, "Forbidden: insufficient clearance", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireCapability gates a route on a capability tag of the user's level.
func (ca *ClearanceAuthorization) RequireCapability(capability string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				ca.logger.Warn("capability check failed: user not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.Clearance.HasCapability(capability) {
				ca.logger.WarnContext(r.Context(), "access denied: missing capability",
					"user_id", user.ID,
					"user_clearance", user.Clearance,
					"required_capability", capability)
				http.Error(w, "Forbidden: insufficient clearance", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdministrator gates a route to level-5 personnel.
func (ca *ClearanceAuthorization) RequireAdministrator() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.IsAdministrator() {
				ca.logger.WarnContext(r.Context(), "access denied: administrator clearance required",
					"user_id", user.ID,
					"user_clearance", user.Clearance)
				http.Error(w, "Forbidden: insufficient clearance", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
