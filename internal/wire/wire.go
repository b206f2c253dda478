package wire

import (
	"net/http"

	"gym-scheduling/internal/adaptor"
	"gym-scheduling/internal/data/repository"
	"gym-scheduling/internal/usecase"
	"gym-scheduling/pkg/middleware"
	"gym-scheduling/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes all dependencies.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireSchedule(r, handler.Schedule, handler.Booking)
	wireBooking(r, handler.Booking)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
