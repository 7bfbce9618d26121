package handler

import (
	"net/http"

	"github.com/goccy/go-json"
)

// Every body is wrapped in an envelope with a success flag.
type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Client-facing messages.
const (
	msgRouteNotFound = "Route not found"
	msgInvalidJSON   = "Invalid JSON body"
	msgInvalidID     = "Invalid id"
	msgItemNotFound  = "Item not found"
	msgReadFailed    = "Could not read items"
	msgCreateFailed  = "Could not save item"
	msgUpdateFailed  = "Could not update item"
	msgDeleteFailed  = "Could not delete item"
	msgInternal      = "Internal server error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Message: msg})
}
