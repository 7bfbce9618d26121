package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/stevemurr/simple-items-server/middleware"
	"github.com/stevemurr/simple-items-server/model"
	"github.com/stevemurr/simple-items-server/schema"
	"github.com/stevemurr/simple-items-server/store"
)

const maxBodyBytes = 1 << 20

// ---------- helpers ----------

// readBody decodes the request body as a JSON object. An empty body is an
// empty object.
func readBody(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	defer r.Body.Close()
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return map[string]any{}, nil
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// parseID reads the {id} path segment as a base-10 integer.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// parseFields reads and validates the body, writing a 400 on failure.
func (h *Handler) parseFields(w http.ResponseWriter, r *http.Request) (model.Fields, bool) {
	doc, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return model.Fields{}, false
	}
	f, err := schema.Validate(doc)
	if err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Message)
			return model.Fields{}, false
		}
		h.log.Error("validator failed", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return model.Fields{}, false
	}
	return f, true
}

// storageFailure logs err and writes a 500 with msg.
func (h *Handler) storageFailure(w http.ResponseWriter, r *http.Request, msg string, err error) {
	kind := "io"
	var derr *store.DecodeError
	if errors.As(err, &derr) {
		kind = "decode"
	}
	h.log.Error(msg,
		"err", err,
		"kind", kind,
		"request_id", middleware.RequestIDFromContext(r.Context()),
	)
	writeError(w, http.StatusInternalServerError, msg)
}

// ---------- item CRUD ----------

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	f, ok := h.parseFields(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	items, err := h.store.Load(r.Context())
	if err != nil {
		h.storageFailure(w, r, msgReadFailed, err)
		return
	}

	item := f.WithID(items.NextID(h.ids))
	items = items.Append(item)

	if err := h.store.Save(r.Context(), items); err != nil {
		h.storageFailure(w, r, msgCreateFailed, err)
		return
	}
	writeData(w, http.StatusCreated, item)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	items, err := h.store.Load(r.Context())
	if err != nil {
		h.storageFailure(w, r, msgReadFailed, err)
		return
	}
	if items == nil {
		items = model.Collection{}
	}
	writeData(w, http.StatusOK, items)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	items, err := h.store.Load(r.Context())
	if err != nil {
		h.storageFailure(w, r, msgReadFailed, err)
		return
	}
	item, found := items.Find(id)
	if !found {
		writeError(w, http.StatusNotFound, msgItemNotFound)
		return
	}
	writeData(w, http.StatusOK, item)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}
	f, ok := h.parseFields(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	items, err := h.store.Load(r.Context())
	if err != nil {
		h.storageFailure(w, r, msgReadFailed, err)
		return
	}
	// Full replacement: only the id survives from the stored record.
	item, found := items.Replace(id, f)
	if !found {
		writeError(w, http.StatusNotFound, msgItemNotFound)
		return
	}

	if err := h.store.Save(r.Context(), items); err != nil {
		h.storageFailure(w, r, msgUpdateFailed, err)
		return
	}
	writeData(w, http.StatusOK, item)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	items, err := h.store.Load(r.Context())
	if err != nil {
		h.storageFailure(w, r, msgReadFailed, err)
		return
	}
	remaining, removed, found := items.Remove(id)
	if !found {
		writeError(w, http.StatusNotFound, msgItemNotFound)
		return
	}

	if err := h.store.Save(r.Context(), remaining); err != nil {
		h.storageFailure(w, r, msgDeleteFailed, err)
		return
	}
	writeData(w, http.StatusOK, removed)
}
