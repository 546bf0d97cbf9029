package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"fundnav/src/repositories"
	"fundnav/src/schemas"
	"fundnav/src/utils"
)

func (h *Handler) CreateStrategy(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.CreateStrategyRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	strategy, err := h.StrategiesController.CreateStrategy(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, strategy, http.StatusCreated)
}

func (h *Handler) GetAllStrategies(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	strategies, err := h.StrategiesController.GetAllStrategies(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, strategies, http.StatusOK)
}

func (h *Handler) GetStrategyByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := idParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	strategy, err := h.StrategiesController.GetStrategyByID(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, strategy, http.StatusOK)
}

func (h *Handler) RecordNav(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := idParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.RecordNavRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	record, err := h.StrategiesController.RecordNav(ctx, id, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, record, http.StatusCreated)
}

func (h *Handler) GetNavRecords(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var filter repositories.NavRecordFilter
	if value := r.URL.Query().Get("strategyId"); value != "" {
		strategyID, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			h.HandleErrors(w, utils.BadRequest("invalid strategyId query parameter"))
			return
		}
		filter.StrategyID = &strategyID
	}
	if value := r.URL.Query().Get("startDate"); value != "" {
		startDate, err := utils.ParseDate(value)
		if err != nil {
			h.HandleErrors(w, utils.UnprocessableEntity(err.Error()))
			return
		}
		filter.StartDate = &startDate
	}
	if value := r.URL.Query().Get("endDate"); value != "" {
		endDate, err := utils.ParseDate(value)
		if err != nil {
			h.HandleErrors(w, utils.UnprocessableEntity(err.Error()))
			return
		}
		filter.EndDate = &endDate
	}

	records, err := h.StrategiesController.GetNavRecords(ctx, filter)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, records, http.StatusOK)
}
