package bid

import (
	"context"
	"encoding/json"
	serrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"talentbridge/internal/http-server/middleware/auth"
	"talentbridge/internal/lib/errors"
	"talentbridge/internal/models/bid"
	"talentbridge/internal/storage/mongo"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type BidSaver interface {
	SaveBid(ctx context.Context, req bid.BidRequest) (bid.Bid, error)
}

type BidsReader interface {
	ReadBids(ctx context.Context, email string, asBuyer bool) ([]bid.Bid, error)
}

type BidStatusUpdater interface {
	ChangeBidStatus(ctx context.Context, id string, to bid.Status, callerEmail string) (bid.Bid, error)
}

func NewPostBid(log *slog.Logger, bidSaver BidSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.bid.NewPostBid"
		log := log.With(slog.String("op", op))

		var req bid.BidRequest

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

		// The bid is placed by the authenticated identity, not whatever
		// email the body claims.
		if req.Email != auth.Email(r.Context()) {
			render.Status(r, 403)
			render.JSON(w, r, errors.NewHttpError(errors.KindForbidden, "bidder email does not match the session"))
			return
		}

		resp, err := bidSaver.SaveBid(r.Context(), req)
		if err != nil {
			renderStoreError(w, r, log, err)
			return
		}

		render.JSON(w, r, resp)
	}
}

func NewGetBids(log *slog.Logger, bidsReader BidsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.bid.NewGetBids"
		log := log.With(slog.String("op", op))

		email := chi.URLParam(r, "email")
		if email == "" {
			render.Status(r, 422)
			render.JSON(w, r, errors.NewHttpError(errors.KindValidation, "The email is empty"))
			return
		}

		asBuyer := false
		if v := r.URL.Query().Get("buyer"); v != "" {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				render.Status(r, 422)
				render.JSON(w, r, errors.NewHttpError(errors.KindValidation, "The buyer flag is invalid"))
				return
			}
			asBuyer = parsed
		}

		resp, err := bidsReader.ReadBids(r.Context(), email, asBuyer)
		if err != nil {
			renderStoreError(w, r, log, err)
			return
		}

		render.JSON(w, r, resp)
	}
}

func NewPatchBidStatus(log *slog.Logger, bidStatusUpdater BidStatusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.bid.NewPatchBidStatus"
		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			render.Status(r, 422)
			render.JSON(w, r, errors.NewHttpError(errors.KindValidation, "The bid id is invalid"))
			return
		}

		var req bid.StatusPatchRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error(err.Error())
			render.Status(r, 400)
			render.JSON(w, r, errors.NewHttpError(errors.KindValidation, "Error decoding request body"))
			return
		}

		status, err := bid.ParseStatus(req.Status)
		if err != nil {
			render.Status(r, 422)
			render.JSON(w, r, errors.NewHttpError(errors.KindValidation, err.Error()))
			return
		}

		resp, err := bidStatusUpdater.ChangeBidStatus(r.Context(), id, status, auth.Email(r.Context()))
		if err != nil {
			renderStoreError(w, r, log, err)
			return
		}

		render.JSON(w, r, resp)
	}
}

func renderStoreError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	log.Error(err.Error())

	var rule bid.RuleError
	switch {
	case serrors.Is(err, mongo.ErrNotFound):
		render.Status(r, 404)
		render.JSON(w, r, errors.NewHttpError(errors.KindNotFound, err.Error()))
	case serrors.Is(err, mongo.ErrDuplicateBid):
		render.Status(r, 409)
		render.JSON(w, r, errors.NewHttpError(errors.KindDuplicateBid, "You have already placed a bid on this job!"))
	case serrors.Is(err, mongo.ErrIllegalTransition):
		render.Status(r, 409)
		render.JSON(w, r, errors.NewHttpError(errors.KindIllegalTransition, err.Error()))
	case serrors.Is(err, mongo.ErrForbidden):
		render.Status(r, 403)
		render.JSON(w, r, errors.NewHttpError(errors.KindForbidden, err.Error()))
	case serrors.As(err, &rule):
		render.Status(r, 422)
		render.JSON(w, r, errors.NewHttpError(errors.KindValidation, rule.Error()))
	default:
		render.Status(r, 500)
		render.JSON(w, r, errors.NewHttpError(errors.KindInternal, err.Error()))
	}
}
