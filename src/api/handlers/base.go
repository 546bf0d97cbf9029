package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"fundnav/src/api/controllers"
	"fundnav/src/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	StrategiesController  controllers.StrategiesControllerI
	ProductsController    controllers.ProductsControllerI
	InvestmentsController controllers.InvestmentsControllerI
	DashboardController   controllers.DashboardControllerI
}

func NewHandler(
	strategiesController controllers.StrategiesControllerI,
	productsController controllers.ProductsControllerI,
	investmentsController controllers.InvestmentsControllerI,
	dashboardController controllers.DashboardControllerI,
) *Handler {
	return &Handler{
		StrategiesController:  strategiesController,
		ProductsController:    productsController,
		InvestmentsController: investmentsController,
		DashboardController:   dashboardController,
	}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	if errors.Is(err, context.DeadlineExceeded) {
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	} else if errors.As(err, &httpErr) {
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	} else if err != nil {
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusInternalServerError)
	} else {
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}

func (h *Handler) decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return utils.UnprocessableEntity("invalid request body: " + err.Error())
	}
	return nil
}

// idParam reads a positive integer id from the route.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, utils.BadRequest("invalid " + name + " URL parameter")
	}
	return id, nil
}

// dateQuery reads an optional YYYY-MM-DD query parameter, falling back to
// fallback when absent.
func dateQuery(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback, nil
	}
	date, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, utils.UnprocessableEntity(err.Error())
	}
	return date, nil
}
