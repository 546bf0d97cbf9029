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

func (h *Handler) CreateInvestor(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.CreateInvestorRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	investor, err := h.InvestmentsController.CreateInvestor(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, investor, http.StatusCreated)
}

func (h *Handler) GetAllInvestors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	investors, err := h.InvestmentsController.GetAllInvestors(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, investors, http.StatusOK)
}

func (h *Handler) RecordInvestment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.RecordInvestmentRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	investment, err := h.InvestmentsController.RecordInvestment(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, investment, http.StatusCreated)
}

func (h *Handler) GetInvestments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var filter repositories.InvestmentFilter
	if value := r.URL.Query().Get("investorId"); value != "" {
		investorID, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			h.HandleErrors(w, utils.BadRequest("invalid investorId query parameter"))
			return
		}
		filter.InvestorID = &investorID
	}
	if value := r.URL.Query().Get("productId"); value != "" {
		productID, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			h.HandleErrors(w, utils.BadRequest("invalid productId query parameter"))
			return
		}
		filter.ProductID = &productID
	}

	investments, err := h.InvestmentsController.GetInvestments(ctx, filter)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, investments, http.StatusOK)
}

func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	id, err := idParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	portfolio, err := h.InvestmentsController.GetPortfolio(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, portfolio, http.StatusOK)
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	dashboard, err := h.DashboardController.GetDashboard(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, dashboard, http.StatusOK)
}
