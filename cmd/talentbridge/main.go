package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talentbridge/internal/config"
	"talentbridge/internal/http-server/handlers/api/auth"
	"talentbridge/internal/http-server/handlers/api/bid"
	"talentbridge/internal/http-server/handlers/api/job"
	"talentbridge/internal/http-server/handlers/api/ping"
	mwauth "talentbridge/internal/http-server/middleware/auth"
	"talentbridge/internal/lib/token"
	"talentbridge/internal/storage/mongo"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/joho/godotenv"
)

func main() {

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := godotenv.Load()
	if err != nil {
		log.Error("Failed to load .env", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
		os.Exit(1)
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	storage, err := mongo.New(connectCtx, cfg.MongoURI, cfg.DBName)
	cancel()
	if err != nil {
		log.Error("Failed to connect to mongodb", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
		os.Exit(1)
	}

	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL, cfg.Production)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "TalentBridge server running")
	})
	router.Get("/ping", ping.New(log))
	router.Post("/jwt", auth.NewPostJWT(log, tokens))
	router.Get("/jobs", job.NewGetJobs(log, storage))
	router.Get("/job/{id}", job.NewGetJob(log, storage))
	router.Get("/all-jobs", job.NewGetAllJobs(log, storage))

	router.Group(func(r chi.Router) {
		r.Use(mwauth.Verify(log, tokens))
		r.Post("/add-job", job.NewPostJob(log, storage))
		r.With(mwauth.RequireOwnEmail).Get("/jobs/{email}", job.NewGetBuyerJobs(log, storage))
		r.Delete("/job/{id}", job.NewDeleteJob(log, storage))
		r.Put("/update-job/{id}", job.NewUpdateJob(log, storage))
		r.Post("/add-bid", bid.NewPostBid(log, storage))
		r.With(mwauth.RequireOwnEmail).Get("/bids/{email}", bid.NewGetBids(log, storage))
		r.Patch("/update-bid-status/{id}", bid.NewPatchBidStatus(log, storage))
	})

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start the server")
		}
	}()

	log.Info("starting server", slog.String("addr", cfg.Addr))
	<-done

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down the server", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
	}
	if err := storage.Close(shutdownCtx); err != nil {
		log.Error("failed to close the mongodb client", slog.Attr{Key: "error", Value: slog.StringValue(err.Error())})
	}
	log.Info("server stopped")
}
