package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FeedClient reads the external product feed. The feed speaks the Stripe
// products API shape: a data page of products, each carrying its default
// price in minor currency units.
type FeedClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewFeedClient(baseURL, apiKey string, timeout time.Duration) *FeedClient {
	return &FeedClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type FeedPrice struct {
	UnitAmount *int64 `json:"unit_amount"`
}

type FeedProduct struct {
	Name         string     `json:"name"`
	Active       bool       `json:"active"`
	Description  *string    `json:"description"`
	Images       []string   `json:"images"`
	DefaultPrice *FeedPrice `json:"default_price"`
}

type feedPage struct {
	Data []FeedProduct `json:"data"`
}

// ListProducts fetches one page of up to 100 feed products.
func (f *FeedClient) ListProducts() ([]FeedProduct, error) {
	endpoint := f.baseURL + "/v1/products?limit=100&expand[]=data.default_price"

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+f.apiKey)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach catalog feed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog feed error (%d): %s", resp.StatusCode, string(body))
	}

	var page feedPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse catalog feed response: %v", err)
	}

	return page.Data, nil
}
