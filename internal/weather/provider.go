package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HTTPProvider fetches forecasts from the upstream weather API.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HTTPProvider) Forecast(ctx context.Context, city string) (Forecast, error) {
	endpoint := p.baseURL + "/v1/forecast?city=" + url.QueryEscape(city)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Forecast{}, fmt.Errorf("build forecast request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Forecast{}, fmt.Errorf("call weather API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Forecast{}, fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var forecast Forecast
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return Forecast{}, fmt.Errorf("decode forecast: %w", err)
	}
	if forecast.FetchedAt.IsZero() {
		forecast.FetchedAt = time.Now().UTC()
	}
	return forecast, nil
}
