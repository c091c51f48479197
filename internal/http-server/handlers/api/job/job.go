package job

import (
	"context"
	"encoding/json"
	serrors "errors"
	"log/slog"
	"net/http"

	"talentbridge/internal/lib/errors"
	"talentbridge/internal/models/job"
	"talentbridge/internal/storage/mongo"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type JobSaver interface {
	SaveJob(ctx context.Context, req job.JobRequest) (job.Job, error)
}

type JobsReader interface {
	ReadJobs(ctx context.Context) ([]job.Job, error)
}

type BuyerJobsReader interface {
	ReadJobsByBuyer(ctx context.Context, email string) ([]job.Job, error)
}

type JobReader interface {
	ReadJob(ctx context.Context, id string) (job.Job, error)
}

type JobDeleter interface {
	DeleteJob(ctx context.Context, id string) error
}

type JobUpdater interface {
	UpdateJob(ctx context.Context, id string, req job.JobRequest) (job.Job, error)
}

type JobLister interface {
	ListJobs(ctx context.Context, q job.ListQuery) ([]job.Job, error)
}

func NewPostJob(log *slog.Logger, jobSaver JobSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.job.NewPostJob"
		log := log.With(slog.String("op", op))

		var req job.JobRequest

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

		resp, err := jobSaver.SaveJob(r.Context(), req)
		if err != nil {
			renderStoreError(w, r, log, err)
			return
		}

		render.JSON(w, r, resp)
	}
}

func NewGetJobs(log *slog.Logger, jobsReader JobsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.job.NewGetJobs"
		log := log.With(slog.String("op", op))

		resp, err := jobsReader.ReadJobs(r.Context())
		if err != nil {
			renderStoreError(w, r, log, err)
			return
		}

		render.JSON(w, r, resp)
	}
}

func NewGetBuyerJobs(log *slog.Logger, buyerJobsReader BuyerJobsReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.job.NewGetBuyerJobs"
		log := log.With(slog.String("op", op))

		email := chi.URLParam(r, "email")
		if email == "" {
			render.Status(r, 422)
			render.JSON(w, r, errors.NewHttpError(errors.KindValidation, "The email is empty"))
			return
		}

		resp, err := buyerJobsReader.ReadJobsByBuyer(r.Context(), email)
		if err != nil {
			renderStoreError(w, r, log, err)
			return
		}

		render.JSON(w, r, resp)
	}
}

func NewGetJob(log *slog.Logger, jobReader JobReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.job.NewGetJob"
		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			render.Status(r, 422)
			render.JSON(w, r, errors.NewHttpError(errors.KindValidation, "The job id is invalid"))
			return
		}

		resp, err := jobReader.ReadJob(r.Context(), id)
		if err != nil {
			renderStoreError(w, r, log, err)
			return
		}

		render.JSON(w, r, resp)
	}
}

func NewDeleteJob(log *slog.Logger, jobDeleter JobDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.job.NewDeleteJob"
		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			render.Status(r, 422)
			render.JSON(w, r, errors.NewHttpError(errors.KindValidation, "The job id is invalid"))
			return
		}

		if err := jobDeleter.DeleteJob(r.Context(), id); err != nil {
			renderStoreError(w, r, log, err)
			return
		}

		render.JSON(w, r, map[string]int{"deletedCount": 1})
	}
}

func NewUpdateJob(log *slog.Logger, jobUpdater JobUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.job.NewUpdateJob"
		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			render.Status(r, 422)
			render.JSON(w, r, errors.NewHttpError(errors.KindValidation, "The job id is invalid"))
			return
		}

		var req job.JobRequest

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

		resp, err := jobUpdater.UpdateJob(r.Context(), id, req)
		if err != nil {
			renderStoreError(w, r, log, err)
			return
		}

		render.JSON(w, r, resp)
	}
}

func NewGetAllJobs(log *slog.Logger, jobLister JobLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.api.job.NewGetAllJobs"
		log := log.With(slog.String("op", op))

		sort := r.URL.Query().Get("sort")
		if sort != "" && sort != "asc" && sort != "dsc" {
			render.Status(r, 422)
			render.JSON(w, r, errors.NewHttpError(errors.KindValidation, "The sort order is invalid"))
			return
		}

		q := job.ListQuery{
			Category: r.URL.Query().Get("filter"),
			Search:   r.URL.Query().Get("search"),
			Sort:     sort,
		}

		resp, err := jobLister.ListJobs(r.Context(), q)
		if err != nil {
			renderStoreError(w, r, log, err)
			return
		}

		render.JSON(w, r, resp)
	}
}

func renderStoreError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	log.Error(err.Error())
	switch {
	case serrors.Is(err, mongo.ErrNotFound):
		render.Status(r, 404)
		render.JSON(w, r, errors.NewHttpError(errors.KindNotFound, err.Error()))
	default:
		render.Status(r, 500)
		render.JSON(w, r, errors.NewHttpError(errors.KindInternal, err.Error()))
	}
}
