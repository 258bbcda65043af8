package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Envelope is the uniform wrapper every endpoint returns.
type Envelope struct {
	Status    bool   `json:"status"`
	Result    any    `json:"result,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, result any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Status: true, Result: result, RequestID: requestID})
}

func Created(w http.ResponseWriter, result any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Status: true, Result: result, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Status: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	WriteJSON(w, status, Envelope{Status: false, Error: &Error{Code: code, Message: message, Details: details}, RequestID: requestID})
}
