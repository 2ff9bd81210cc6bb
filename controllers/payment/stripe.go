package paymentcontroller

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StripeClient creates Checkout Sessions against the Stripe HTTP API.
type StripeClient struct {
	secretKey  string
	apiBase    string
	httpClient *http.Client
}

func NewStripeClient(secretKey, apiBase string, timeout time.Duration) *StripeClient {
	return &StripeClient{
		secretKey:  secretKey,
		apiBase:    strings.TrimSuffix(apiBase, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// LineItem is one purchasable line on a checkout session. UnitAmount is in
// minor currency units (cents), the way Stripe expects it.
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int
	ImageURL   string
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type stripeErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCheckoutSession requests a hosted payment session. Any transport,
// HTTP or application failure comes back as a single error for the handler
// to wrap; the raw provider response is never surfaced.
func (s *StripeClient) CreateCheckoutSession(successURL, cancelURL string, items []LineItem, metadata map[string]string) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)

	for i, item := range items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
		form.Set(prefix+"[price_data][currency]", "cad")
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		if item.ImageURL != "" {
			form.Set(prefix+"[price_data][product_data][images][0]", item.ImageURL)
		}
	}

	for key, value := range metadata {
		form.Set("metadata["+key+"]", value)
	}

	req, err := http.NewRequest(http.MethodPost, s.apiBase+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Stripe: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var stripeErr stripeErrorResponse
		if err := json.Unmarshal(body, &stripeErr); err == nil && stripeErr.Error.Message != "" {
			return nil, fmt.Errorf("%s", stripeErr.Error.Message)
		}
		return nil, fmt.Errorf("stripe API error (%d): %s", resp.StatusCode, string(body))
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to parse Stripe response: %v", err)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("stripe returned empty checkout URL")
	}

	return &session, nil
}
