package middleware

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/workpay/backend/internal/models"
)

type contextKey string

const profileContextKey contextKey = "profile"

// ProfileHeader carries the caller's profile id. Resolving it to a
// profile row is the whole of authentication here; anything stronger is
// the deployment's problem.
const ProfileHeader = "profile_id"

// ProfileFromContext returns the authenticated profile stored by
// ProfileAuth.
func ProfileFromContext(ctx context.Context) (*models.Profile, bool) {
	p, ok := ctx.Value(profileContextKey).(*models.Profile)
	return p, ok
}

// WithProfile stores a profile in the context. Exposed for handler tests.
func WithProfile(ctx context.Context, p *models.Profile) context.Context {
	return context.WithValue(ctx, profileContextKey, p)
}

// ProfileAuth resolves the profile_id request header against the profiles
// table and injects the matching profile into the request context.
func ProfileAuth(db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(ProfileHeader)
			if header == "" {
				http.Error(w, "profile_id header required", http.StatusUnauthorized)
				return
			}

			id, err := strconv.ParseInt(header, 10, 64)
			if err != nil {
				http.Error(w, "invalid profile_id header", http.StatusUnauthorized)
				return
			}

			var p models.Profile
			err = db.QueryRowContext(r.Context(), `
				SELECT id, role, profession, balance, first_name, last_name, version
				FROM profiles
				WHERE id = $1`, id).
				Scan(&p.ID, &p.Role, &p.Profession, &p.Balance, &p.FirstName, &p.LastName, &p.Version)
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "unknown profile", http.StatusUnauthorized)
				return
			}
			if err != nil {
				http.Error(w, "profile lookup failed", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), &p)))
		})
	}
}
