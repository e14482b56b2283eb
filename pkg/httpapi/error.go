package httpapi

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the error shape of read endpoints.
type ErrorBody struct {
	Error string `json:"error"`
}

// Result is the envelope of mutating endpoints.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, &ErrorBody{Error: message})
}

func WriteFailure(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, &Result{Success: false, Error: message})
}

func WriteSuccess(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, &Result{Success: true, Message: message})
}
