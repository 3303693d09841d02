package estimator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// EstimatorInterface is the best-effort wait-time collaborator. Errors
// and timeouts are tolerated by callers; an order is never blocked on
// an estimate.
type EstimatorInterface interface {
	Estimate(ctx context.Context, activeOrders int, itemCount int) (string, error)
}

type estimateRequest struct {
	ActiveOrders int `json:"activeOrders"`
	ItemCount    int `json:"itemCount"`
}

type estimateResponse struct {
	Estimation string `json:"estimation"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Estimate(ctx context.Context, activeOrders int, itemCount int) (string, error) {
	body, err := json.Marshal(estimateRequest{ActiveOrders: activeOrders, ItemCount: itemCount})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/estimate-wait-time", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("estimator returned status %d", resp.StatusCode)
	}

	var out estimateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Estimation, nil
}

var _ EstimatorInterface = (*Client)(nil)
