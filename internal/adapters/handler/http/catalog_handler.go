package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shoevote/api/internal/core/domain"
	"github.com/shoevote/api/internal/core/ports"
)

type CatalogHandler struct {
	catalog ports.CatalogService
	ledger  ports.VoteLedger
}

func NewCatalogHandler(catalog ports.CatalogService, ledger ports.VoteLedger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		ledger:  ledger,
	}
}

type addItemsRequest struct {
	References []string `json:"references"`
}

func (h *CatalogHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	var req addItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	items, err := h.catalog.AddItems(r.Context(), ports.AddItemsInput{References: req.References})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCatalogAdd) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(items)
}

func (h *CatalogHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDParam(r)
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}

	if err := h.catalog.DeleteItem(r.Context(), itemID); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) Wipe(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Wipe(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) RemoveVoter(w http.ResponseWriter, r *http.Request) {
	voterKey := chi.URLParam(r, "key")
	if err := h.ledger.RemoveVoter(r.Context(), voterKey); err != nil {
		if errors.Is(err, domain.ErrEmptyVoterKey) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
