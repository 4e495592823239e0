package receipt

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// handleHealth reports service liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// validateReceipt checks field syntax before the receipt reaches scoring.
// The scoring rules tolerate unparseable fields, but callers submitting
// malformed receipts get a client error instead of a silently low score.
func validateReceipt(r Receipt) error {
	if strings.TrimSpace(r.Retailer) == "" {
		return fmt.Errorf("retailer is required")
	}
	if _, err := time.Parse("2006-01-02", r.PurchaseDate); err != nil {
		return fmt.Errorf("purchaseDate must be a valid YYYY-MM-DD date")
	}
	if _, err := time.Parse("15:04", r.PurchaseTime); err != nil {
		return fmt.Errorf("purchaseTime must be a valid 24-hour HH:MM time")
	}
	if total, err := decimal.NewFromString(r.Total); err != nil || total.IsNegative() {
		return fmt.Errorf("total must be a non-negative decimal amount")
	}
	for i, item := range r.Items {
		if item.ShortDescription == "" {
			return fmt.Errorf("items[%d].shortDescription is required", i)
		}
		if price, err := decimal.NewFromString(item.Price); err != nil || price.IsNegative() {
			return fmt.Errorf("items[%d].price must be a non-negative decimal amount", i)
		}
	}
	return nil
}

// handleProcessReceipt scores a submitted receipt and returns its identifier
func (s *Server) handleProcessReceipt(w http.ResponseWriter, r *http.Request) {
	var receipt Receipt
	if err := json.NewDecoder(r.Body).Decode(&receipt); err != nil {
		slog.Error("Error decoding receipt body", "error", err)
		setCORSHeaders(w)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "Invalid request body",
		})
		return
	}

	if err := validateReceipt(receipt); err != nil {
		slog.Error("Rejecting invalid receipt", "retailer", receipt.Retailer, "error", err)
		setCORSHeaders(w)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error": err.Error(),
		})
		return
	}

	id, err := s.service.ProcessReceipt(receipt)
	if err != nil {
		slog.Error("Error processing receipt", "retailer", receipt.Retailer, "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"id": id}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetPoints returns the stored points for an identifier
func (s *Server) handleGetPoints(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	// Malformed identifiers never reach the store and are indistinguishable
	// from a miss
	if _, err := uuid.Parse(id); err != nil {
		corsError(w, "Score not found", http.StatusNotFound)
		return
	}

	points, err := s.service.GetPoints(id)
	if err != nil {
		corsError(w, "Score not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]int64{"points": points}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}
