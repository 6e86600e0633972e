package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.stripe.com"

// StripeClient talks to the Stripe REST API. Requests are form-encoded
// per the Stripe wire format.
type StripeClient struct {
	SecretKey     string
	WebhookSecret string
	BaseURL       string
	Currency      string

	httpClient *http.Client
}

// PaymentIntent is the subset of the Stripe payment_intent object the
// service needs.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// WebhookEvent is the envelope Stripe posts to the webhook endpoint
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewStripeClient(secretKey, webhookSecret, currency string) *StripeClient {
	if currency == "" {
		currency = "usd"
	}
	return &StripeClient{
		SecretKey:     secretKey,
		WebhookSecret: webhookSecret,
		BaseURL:       defaultBaseURL,
		Currency:      currency,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateIntentParams describes one payment intent. Metadata keys are
// flattened into Stripe's metadata[...] form fields.
type CreateIntentParams struct {
	AmountMinorUnits int64
	Metadata         map[string]string
}

// CreatePaymentIntent creates a payment intent and returns its id and
// client secret for browser-side confirmation.
func (c *StripeClient) CreatePaymentIntent(ctx context.Context, params CreateIntentParams) (*PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(params.AmountMinorUnits, 10))
	form.Set("currency", c.Currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var intent PaymentIntent
	if err := c.do(ctx, http.MethodPost, "/v1/payment_intents", form, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// GetPaymentIntent fetches the current state of an intent. Used by the
// reconciliation worker for stale pending payments.
func (c *StripeClient) GetPaymentIntent(ctx context.Context, intentID string) (*PaymentIntent, error) {
	var intent PaymentIntent
	if err := c.do(ctx, http.MethodGet, "/v1/payment_intents/"+url.PathEscape(intentID), nil, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (c *StripeClient) do(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr stripeError
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("stripe API error (%d): %s", resp.StatusCode, string(data))
	}

	return json.Unmarshal(data, out)
}

// DefaultWebhookTolerance bounds how old a signed webhook may be
const DefaultWebhookTolerance = 5 * time.Minute

// VerifyWebhookSignature checks the Stripe-Signature header against the
// payload: the v1 signature is HMAC-SHA256 of "<timestamp>.<payload>"
// keyed with the webhook secret.
func (c *StripeClient) VerifyWebhookSignature(payload []byte, sigHeader string, tolerance time.Duration) error {
	var timestamp int64
	var signatures []string

	for _, part := range strings.Split(sigHeader, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid signature timestamp: %w", err)
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return fmt.Errorf("malformed signature header")
	}

	if tolerance > 0 {
		age := time.Since(time.Unix(timestamp, 0))
		if age > tolerance || age < -tolerance {
			return fmt.Errorf("signature timestamp outside tolerance")
		}
	}

	mac := hmac.New(sha256.New, []byte(c.WebhookSecret))
	fmt.Fprintf(mac, "%d.%s", timestamp, payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return nil
		}
	}
	return fmt.Errorf("no matching signature")
}

// SignWebhookPayload produces a Stripe-Signature header value for the
// payload. Test helper for webhook handling.
func (c *StripeClient) SignWebhookPayload(payload []byte, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(c.WebhookSecret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

// ToMinorUnits converts a major-currency amount to minor units,
// rounding to the nearest cent.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
