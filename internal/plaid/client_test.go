package plaid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMapCategory(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		want       string
	}{
		{"empty", nil, "Other"},
		{"restaurants", []string{"Food and Drink", "Restaurants"}, "Dining"},
		{"coffee shop", []string{"Coffee Shop"}, "Dining"},
		{"retail", []string{"Retail Stores"}, "Shopping"},
		{"streaming", []string{"Netflix Subscription"}, "Entertainment"},
		{"airline", []string{"Airlines and Aviation Services"}, "Travel"},
		{"rideshare", []string{"Uber"}, "Transportation"},
		{"power bill", []string{"Electric Company"}, "Utilities"},
		{"unmatched", []string{"Healthcare"}, "Other"},
		{"case insensitive", []string{"RESTAURANT"}, "Dining"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapCategory(tt.categories); got != tt.want {
				t.Errorf("MapCategory(%v) = %s, want %s", tt.categories, got, tt.want)
			}
		})
	}
}

func TestClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transactions/get" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var req transactionsGetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.ClientID != "cid" || req.Secret != "sec" || req.AccessToken != "tok" {
			t.Errorf("credentials not forwarded: %+v", req)
		}
		if req.Options.Count != maxTransactions {
			t.Errorf("count = %d, want %d", req.Options.Count, maxTransactions)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"transactions": []map[string]interface{}{
				{
					"date":          "2026-08-12",
					"amount":        42.17,
					"name":          "STARBUCKS #1234",
					"merchant_name": "Starbucks",
					"category":      []string{"Food and Drink", "Coffee Shop"},
				},
				{
					"date":     "2026-08-15",
					"amount":   -10.00,
					"name":     "REFUND ACME",
					"category": []string{"Retail Stores"},
				},
			},
		})
	}))
	defer server.Close()

	c := NewClient("cid", "sec", "tok", server.URL)

	txs, err := c.Fetch(context.Background(), 30)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}

	first := txs[0]
	if first.Merchant != "Starbucks" {
		t.Errorf("merchant = %s, want Starbucks", first.Merchant)
	}
	if first.Category != "Dining" {
		t.Errorf("category = %s, want Dining", first.Category)
	}
	if !first.Amount.Equal(decimal.RequireFromString("42.17")) {
		t.Errorf("amount = %s, want 42.17", first.Amount)
	}

	second := txs[1]
	if second.Merchant != "REFUND ACME" {
		t.Errorf("merchant fallback = %s, want the name field", second.Merchant)
	}
	if !second.Amount.IsNegative() {
		t.Errorf("refund amount = %s, want negative", second.Amount)
	}
}

func TestClient_FetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error_code":    "INVALID_ACCESS_TOKEN",
			"error_message": "the access token is invalid",
		})
	}))
	defer server.Close()

	c := NewClient("cid", "sec", "bad", server.URL)

	// A failed fetch must surface as an error, not an empty batch.
	txs, err := c.Fetch(context.Background(), 30)
	if err == nil {
		t.Fatal("Fetch() returned nil error for an API failure")
	}
	if txs != nil {
		t.Errorf("Fetch() returned %d transactions alongside the error", len(txs))
	}
}
