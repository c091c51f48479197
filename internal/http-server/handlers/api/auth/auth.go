package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"talentbridge/internal/lib/errors"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type TokenIssuer interface {
	Issue(email string, now time.Time) (string, error)
	Cookie(value string) *http.Cookie
}

type JWTRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// NewPostJWT issues the session cookie for a supplied email identity.
func NewPostJWT(log *slog.Logger, tokens TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.auth.NewPostJWT"
		log := log.With(slog.String("op", op))

		var req JWTRequest

		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()

		if err := decoder.Decode(&req); err != nil {
			log.Error("Error decoding request body")
			render.Status(r, 400)
			render.JSON(w, r, errors.NewHttpError(errors.KindValidation, "Error decoding request body"))
			return
		}

		if err := validate.Struct(req); err != nil {
			log.Error(err.Error())
			render.Status(r, 422)
			render.JSON(w, r, errors.NewHttpError(errors.KindValidation, err.Error()))
			return
		}

		signed, err := tokens.Issue(req.Email, time.Now())
		if err != nil {
			log.Error(err.Error())
			render.Status(r, 500)
			render.JSON(w, r, errors.NewHttpError(errors.KindInternal, "failed to issue token"))
			return
		}

		http.SetCookie(w, tokens.Cookie(signed))
		render.JSON(w, r, map[string]bool{"success": true})
	}
}
