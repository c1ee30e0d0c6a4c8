package api

import (
	"encoding/json"
	"net/http"
)

// Error codes returned to clients alongside the HTTP status
const (
	CodeStockNegative      = "STOCK_NEGATIVE"
	CodeSKUAlreadyExists   = "SKU_ALREADY_EXISTS"
	CodeSKUConfirmRequired = "SKU_CONFIRM_REQUIRED"
	CodeSKUGeneration      = "SKU_GENERATION_FAILED"
	CodeNotFound           = "NOT_FOUND"
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeInternal           = "INTERNAL_ERROR"
)

// Response is the common API envelope
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// OK sends a successful response with data
func OK(w http.ResponseWriter, data interface{}) {
	RespondJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

// Created sends a creation response with a message and data
func Created(w http.ResponseWriter, message string, data interface{}) {
	RespondJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// Fail sends an error response with a machine-readable code
func Fail(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, Response{Success: false, Error: message, Code: code})
}
