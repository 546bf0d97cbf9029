package handlers

import (
	"context"
	"net/http"
	"time"

	"fundnav/src/schemas"
	"fundnav/src/utils"
)

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.CreateProductRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	product, err := h.ProductsController.CreateProduct(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, product, http.StatusCreated)
}

func (h *Handler) GetAllProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	products, err := h.ProductsController.GetAllProducts(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, products, http.StatusOK)
}

func (h *Handler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := idParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	product, err := h.ProductsController.GetProductByID(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, product, http.StatusOK)
}

func (h *Handler) SetProductWeights(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := idParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.SetWeightsRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	weights, err := h.ProductsController.SetWeights(ctx, id, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, weights, http.StatusOK)
}

func (h *Handler) GetProductWeights(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := idParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	asOf, err := dateQuery(r, "date", utils.Today())
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	weights, err := h.ProductsController.GetWeights(ctx, id, asOf)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, weights, http.StatusOK)
}

func (h *Handler) GetProductNav(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := idParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	date, err := dateQuery(r, "date", utils.Today())
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	nav, err := h.ProductsController.GetProductNav(ctx, id, date)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, nav, http.StatusOK)
}

func (h *Handler) GetProductNavHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	id, err := idParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	// Default window: trailing year.
	to, err := dateQuery(r, "endDate", utils.Today())
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	from, err := dateQuery(r, "startDate", to.AddDate(-1, 0, 0))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	history, err := h.ProductsController.GetProductNavHistory(ctx, id, from, to)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, history, http.StatusOK)
}
