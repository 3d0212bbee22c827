// Package plaid is a minimal client for the Plaid transactions endpoint.
// It implements the coach.TransactionSource contract and maps Plaid's
// category hierarchy onto the coach's flat category labels.
package plaid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dvloznov/budget-coach/internal/coach"
	"github.com/shopspring/decimal"
)

// Plaid environment base URLs.
const (
	EnvSandbox    = "https://sandbox.plaid.com"
	EnvProduction = "https://production.plaid.com"
)

// maxTransactions caps one fetch; the analysis window is a month, which
// fits comfortably in a single page.
const maxTransactions = 500

const dateLayout = "2006-01-02"

// Client calls the Plaid API with fixed credentials for one linked item.
type Client struct {
	clientID    string
	secret      string
	accessToken string
	baseURL     string
	httpClient  *http.Client
}

// NewClient creates a Plaid client. An empty environment means sandbox.
func NewClient(clientID, secret, accessToken, environment string) *Client {
	if environment == "" {
		environment = EnvSandbox
	}
	return &Client{
		clientID:    clientID,
		secret:      secret,
		accessToken: accessToken,
		baseURL:     environment,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

type transactionsGetRequest struct {
	ClientID    string                 `json:"client_id"`
	Secret      string                 `json:"secret"`
	AccessToken string                 `json:"access_token"`
	StartDate   string                 `json:"start_date"`
	EndDate     string                 `json:"end_date"`
	Options     transactionsGetOptions `json:"options"`
}

type transactionsGetOptions struct {
	Count  int `json:"count"`
	Offset int `json:"offset"`
}

type plaidTransaction struct {
	Date         string      `json:"date"`
	Amount       json.Number `json:"amount"`
	Name         string      `json:"name"`
	MerchantName string      `json:"merchant_name"`
	Category     []string    `json:"category"`
}

type transactionsGetResponse struct {
	Transactions []plaidTransaction `json:"transactions"`
	ErrorCode    string             `json:"error_code"`
	ErrorMessage string             `json:"error_message"`
}

// Fetch returns the transactions of the trailing windowDays window. A
// transport or API failure is returned as an error; callers must not treat
// it as an empty batch.
func (c *Client) Fetch(ctx context.Context, windowDays int) ([]coach.Transaction, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -windowDays)

	reqBody := transactionsGetRequest{
		ClientID:    c.clientID,
		Secret:      c.secret,
		AccessToken: c.accessToken,
		StartDate:   start.Format(dateLayout),
		EndDate:     end.Format(dateLayout),
		Options:     transactionsGetOptions{Count: maxTransactions},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("Fetch: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transactions/get", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("Fetch: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Fetch: call plaid: %w", err)
	}
	defer resp.Body.Close()

	var parsed transactionsGetResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("Fetch: decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Fetch: plaid returned %d: %s (%s)",
			resp.StatusCode, parsed.ErrorMessage, parsed.ErrorCode)
	}

	txs := make([]coach.Transaction, 0, len(parsed.Transactions))
	for _, pt := range parsed.Transactions {
		tx, err := normalizeTransaction(pt)
		if err != nil {
			return nil, fmt.Errorf("Fetch: %w", err)
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

func normalizeTransaction(pt plaidTransaction) (coach.Transaction, error) {
	date, err := time.Parse(dateLayout, pt.Date)
	if err != nil {
		return coach.Transaction{}, fmt.Errorf("normalizeTransaction: bad date %q: %w", pt.Date, err)
	}

	amount, err := decimal.NewFromString(pt.Amount.String())
	if err != nil {
		return coach.Transaction{}, fmt.Errorf("normalizeTransaction: bad amount %q: %w", pt.Amount, err)
	}

	merchant := pt.MerchantName
	if merchant == "" {
		merchant = pt.Name
	}

	return coach.Transaction{
		Date:        date,
		Amount:      amount,
		Category:    MapCategory(pt.Category),
		Description: pt.Name,
		Merchant:    merchant,
	}, nil
}
