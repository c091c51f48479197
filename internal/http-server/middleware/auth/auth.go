package auth

import (
	"context"
	"log/slog"
	"net/http"

	"talentbridge/internal/lib/errors"
	"talentbridge/internal/lib/token"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type ctxKey struct{}

type Verifier interface {
	Verify(tokenString string) (string, error)
}

// Verify checks the auth cookie and stores the caller's email in the
// request context.
func Verify(log *slog.Logger, verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(token.CookieName)
			if err != nil {
				render.Status(r, 401)
				render.JSON(w, r, errors.NewHttpError(errors.KindUnauthorized, "missing auth cookie"))
				return
			}

			email, err := verifier.Verify(cookie.Value)
			if err != nil {
				log.Warn("rejected auth cookie", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
				render.Status(r, 401)
				render.JSON(w, r, errors.NewHttpError(errors.KindUnauthorized, "invalid auth token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithEmail(r.Context(), email)))
		})
	}
}

// RequireOwnEmail rejects requests whose {email} URL param does not match
// the authenticated identity.
func RequireOwnEmail(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "email") != Email(r.Context()) {
			render.Status(r, 403)
			render.JSON(w, r, errors.NewHttpError(errors.KindForbidden, "forbidden"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithEmail stores the authenticated email on the context.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ctxKey{}, email)
}

// Email returns the authenticated email stored by Verify, or "".
func Email(ctx context.Context) string {
	email, _ := ctx.Value(ctxKey{}).(string)
	return email
}
