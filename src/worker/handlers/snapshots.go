package handlers

import (
	"context"
	"net/http"
	"time"
)

func (h *Handler) RunSnapshots(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	priced, err := h.Snapshots.RunSnapshots(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, map[string]int{"pricedProducts": priced}, http.StatusOK)
}
