package supplier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPClient talks to the supplier API over HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) FetchCatalog(ctx context.Context) ([]Supplier, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/catalog", nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call supplier API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("supplier API returned status %d", resp.StatusCode)
	}

	var suppliers []Supplier
	if err := json.NewDecoder(resp.Body).Decode(&suppliers); err != nil {
		return nil, fmt.Errorf("decode supplier catalog: %w", err)
	}
	return suppliers, nil
}
