// Package service implements the HTTP handlers for the Spliteasy API.
// Handlers validate input, convert rupee decimals to integer paisa at the
// boundary, and delegate ledger math to the calculator package.
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/spliteasy/spliteasy/internal/money"
	"github.com/spliteasy/spliteasy/internal/storage"
)

var validate = validator.New()

// errorResponse is the JSON error envelope: {"msg": "..."}.
type errorResponse struct {
	Msg string `json:"msg"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Msg: msg})
}

// decodeRequest parses the JSON body into dst and runs struct validation.
func decodeRequest(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return err
	}
	return nil
}

// respondDomainError maps known domain errors to HTTP statuses, falling
// back to 500 with a generic message (never leaking internals).
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, money.ErrAmountNotPositive),
		errors.Is(err, money.ErrAmountTooLarge),
		errors.Is(err, money.ErrInvalidParticipantCount):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "server error")
	}
}
