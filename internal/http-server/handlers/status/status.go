package status

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"ophasebot/entity"
	"ophasebot/lib/api/response"
	"ophasebot/lib/sl"
)

type Core interface {
	Status() entity.Status
}

func Get(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.With(
			sl.Module("http.handlers.status"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			log.Error("status service not available")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("Status not available"))
			return
		}

		render.JSON(w, r, response.Ok(handler.Status()))
	}
}
