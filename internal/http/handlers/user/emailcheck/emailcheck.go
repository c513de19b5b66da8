// Package emailcheck реализует HTTP-обработчик проверки занятости почты.
// Регистр значения не имеет: почта нормализуется сервисом к нижнему регистру.
package emailcheck

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/users-api/internal/http/response"
	"github.com/magabrotheeeer/users-api/internal/lib/sl"
)

// Handler обрабатывает запросы проверки занятости электронной почты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики проверки почты.
type Service interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверить занятость почты
// @Description Возвращает true, если почта уже используется любой записью,
// @Description включая мягко удаленные.
// @Tags Users
// @Produce  json
// @Param email query string true "Электронная почта"
// @Success 200 {object} response.Response "Признак занятости"
// @Failure 400 {object} response.ErrorResponse "Почта не передана"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/exists [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.emailcheck"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := r.URL.Query().Get("email")
	if email == "" {
		log.Error("email query parameter is missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("email is required"))
		return
	}

	exists, err := h.service.EmailExists(r.Context(), email)
	if err != nil {
		log.Error("failed to check email", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not check email"))
		return
	}

	log.Info("email checked", slog.String("email", email), slog.Bool("exists", exists))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"exists": exists,
	}))
}
