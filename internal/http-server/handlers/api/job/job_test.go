package job

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"talentbridge/internal/models/job"
	"talentbridge/internal/storage/mongo"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubJobSaver struct {
	saved *job.JobRequest
	resp  job.Job
	err   error
}

func (s *stubJobSaver) SaveJob(_ context.Context, req job.JobRequest) (job.Job, error) {
	s.saved = &req
	return s.resp, s.err
}

type stubJobReader struct {
	id   string
	resp job.Job
	err  error
}

func (s *stubJobReader) ReadJob(_ context.Context, id string) (job.Job, error) {
	s.id = id
	return s.resp, s.err
}

type stubJobDeleter struct {
	id  string
	err error
}

func (s *stubJobDeleter) DeleteJob(_ context.Context, id string) error {
	s.id = id
	return s.err
}

type stubJobLister struct {
	query job.ListQuery
	resp  []job.Job
	err   error
}

func (s *stubJobLister) ListJobs(_ context.Context, q job.ListQuery) ([]job.Job, error) {
	s.query = q
	return s.resp, s.err
}

func jobBody(t *testing.T) string {
	t.Helper()
	payload := map[string]interface{}{
		"title":       "React Dev",
		"description": "Build a dashboard",
		"category":    "Web Development",
		"min_price":   100,
		"max_price":   500,
		"deadline":    time.Now().Add(7 * 24 * time.Hour).Format(time.RFC3339),
		"buyer": map[string]string{
			"name":  "Alice",
			"email": "alice@example.com",
			"photo": "https://example.com/a.png",
		},
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return string(raw)
}

func TestPostJob(t *testing.T) {
	t.Run("saves a valid job", func(t *testing.T) {
		saver := &stubJobSaver{resp: job.Job{Title: "React Dev"}}
		rec := httptest.NewRecorder()

		NewPostJob(discard, saver)(rec, httptest.NewRequest(http.MethodPost, "/add-job", strings.NewReader(jobBody(t))))

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, saver.saved)
		assert.Equal(t, "React Dev", saver.saved.Title)
		assert.Equal(t, 500.0, saver.saved.MaxPrice)
	})

	t.Run("rejects a job missing required fields", func(t *testing.T) {
		saver := &stubJobSaver{}
		rec := httptest.NewRecorder()

		NewPostJob(discard, saver)(rec, httptest.NewRequest(http.MethodPost, "/add-job", strings.NewReader(`{"title":"x"}`)))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Nil(t, saver.saved)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		rec := httptest.NewRecorder()

		NewPostJob(discard, &stubJobSaver{})(rec, httptest.NewRequest(http.MethodPost, "/add-job", strings.NewReader(`{"bogus":1}`)))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetJob(t *testing.T) {
	newRouter := func(reader *stubJobReader) *chi.Mux {
		r := chi.NewRouter()
		r.Get("/job/{id}", NewGetJob(discard, reader))
		return r
	}

	t.Run("returns the job", func(t *testing.T) {
		reader := &stubJobReader{resp: job.Job{Title: "React Dev"}}
		rec := httptest.NewRecorder()

		newRouter(reader).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/job/64f0c8e2a1b2c3d4e5f60718", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "64f0c8e2a1b2c3d4e5f60718", reader.id)
	})

	t.Run("maps a missing job to 404", func(t *testing.T) {
		rec := httptest.NewRecorder()

		newRouter(&stubJobReader{err: mongo.ErrNotFound}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/job/ffffffffffffffffffffffff", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)

		var env struct {
			Kind string `json:"kind"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.Equal(t, "not_found", env.Kind)
	})
}

func TestDeleteJob(t *testing.T) {
	newRouter := func(deleter *stubJobDeleter) *chi.Mux {
		r := chi.NewRouter()
		r.Delete("/job/{id}", NewDeleteJob(discard, deleter))
		return r
	}

	t.Run("deletes by id", func(t *testing.T) {
		deleter := &stubJobDeleter{}
		rec := httptest.NewRecorder()

		newRouter(deleter).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/job/64f0c8e2a1b2c3d4e5f60718", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "64f0c8e2a1b2c3d4e5f60718", deleter.id)
	})

	t.Run("maps a missing job to 404", func(t *testing.T) {
		rec := httptest.NewRecorder()

		newRouter(&stubJobDeleter{err: mongo.ErrNotFound}).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/job/ffffffffffffffffffffffff", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetAllJobs(t *testing.T) {
	t.Run("passes filter, search and sort through", func(t *testing.T) {
		lister := &stubJobLister{resp: []job.Job{}}
		rec := httptest.NewRecorder()

		NewGetAllJobs(discard, lister)(rec, httptest.NewRequest(http.MethodGet, "/all-jobs?filter=Web%20Development&search=react&sort=asc", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, job.ListQuery{Category: "Web Development", Search: "react", Sort: "asc"}, lister.query)
	})

	t.Run("accepts empty parameters", func(t *testing.T) {
		lister := &stubJobLister{resp: []job.Job{}}
		rec := httptest.NewRecorder()

		NewGetAllJobs(discard, lister)(rec, httptest.NewRequest(http.MethodGet, "/all-jobs", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, job.ListQuery{}, lister.query)
	})

	t.Run("rejects an unknown sort order", func(t *testing.T) {
		rec := httptest.NewRecorder()

		NewGetAllJobs(discard, &stubJobLister{})(rec, httptest.NewRequest(http.MethodGet, "/all-jobs?sort=sideways", nil))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("renders an empty list, not null", func(t *testing.T) {
		lister := &stubJobLister{resp: []job.Job{}}
		rec := httptest.NewRecorder()

		NewGetAllJobs(discard, lister)(rec, httptest.NewRequest(http.MethodGet, "/all-jobs", nil))

		assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	})
}
