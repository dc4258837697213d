package fakeapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// resource serves one collection. R is the flat request body type.
type resource[T record, R any] struct {
	store  *Store[T]
	toItem func(R) T
	toList func([]T) any
	toWire func(T) any
}

func (h *resource[T, R]) mount(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.replace)
	r.Delete("/{id}", h.delete)
}

func (h *resource[T, R]) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.toList(h.store.List()))
}

func (h *resource[T, R]) create(w http.ResponseWriter, r *http.Request) {
	var req R
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	created := h.store.Create(h.toItem(req))
	writeJSON(w, http.StatusCreated, h.toWire(created))
}

func (h *resource[T, R]) replace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req R
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	item := h.toItem(req)
	if bodyID := item.RecordID(); bodyID != 0 && bodyID != id {
		http.Error(w, "id mismatch", http.StatusBadRequest)
		return
	}
	updated, err := h.store.Replace(id, item)
	if errors.Is(err, errNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.toWire(updated))
}

func (h *resource[T, R]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.Delete(id); errors.Is(err, errNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
