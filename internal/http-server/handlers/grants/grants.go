package grants

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"ophasebot/entity"
	"ophasebot/lib/api/response"
	"ophasebot/lib/sl"
)

type Core interface {
	Grants(limit int) ([]*entity.GrantRecord, error)
}

// List returns the latest grant records; ?limit= picks how many.
func List(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.With(
			sl.Module("http.handlers.grants"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			log.Error("grant log not available")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("Grant log not available"))
			return
		}

		limit := 0
		if value := r.URL.Query().Get("limit"); value != "" {
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				log.Warn("invalid limit", slog.String("limit", value))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("Invalid limit"))
				return
			}
			limit = n
		}

		records, err := handler.Grants(limit)
		if err != nil {
			log.Error("listing grants", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(fmt.Sprintf("Request failed: %v", err)))
			return
		}
		render.JSON(w, r, response.Ok(records))
	}
}
