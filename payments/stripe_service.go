package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	config "github.com/anavidal/session_booking/configs"
)

const stripeAPIBase = "https://api.stripe.com/v1"

// Webhook signatures older than this are rejected to limit replay.
const signatureTolerance = 5 * time.Minute

type PaymentIntent struct {
	ID                 string   `json:"id"`
	ClientSecret       string   `json:"client_secret"`
	Status             string   `json:"status"`
	Amount             int64    `json:"amount"`
	Currency           string   `json:"currency"`
	PaymentMethodTypes []string `json:"payment_method_types"`
}

type Refund struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object PaymentIntent `json:"object"`
	} `json:"data"`
}

// IsMockMode reports whether the gateway should be simulated locally. Absent
// credentials or a key carrying the "mock" marker switch the whole payment
// path to the local simulation.
func IsMockMode() bool {
	key := config.Config("STRIPE_SECRET_KEY")
	return key == "" || strings.Contains(key, "mock")
}

func IsMockIntentID(id string) bool {
	return strings.HasPrefix(id, "pi_mock_")
}

func NewMockIntentID() string {
	return fmt.Sprintf("pi_mock_%d_%d", time.Now().UnixMilli(), rand.Intn(1000))
}

func MockClientSecret(intentID string) string {
	return "mock_secret_" + intentID
}

func CreatePaymentIntent(amount int64, currency, bookingID string) (*PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", strings.ToLower(currency))
	form.Set("automatic_payment_methods[enabled]", "true")
	form.Set("metadata[booking_id]", bookingID)

	var intent PaymentIntent
	if err := doStripeRequest("POST", "/payment_intents", form, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func RetrievePaymentIntent(intentID string) (*PaymentIntent, error) {
	var intent PaymentIntent
	if err := doStripeRequest("GET", "/payment_intents/"+intentID, nil, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func CreateRefund(paymentIntentID string) (*Refund, error) {
	form := url.Values{}
	form.Set("payment_intent", paymentIntentID)
	form.Set("reason", "requested_by_customer")

	var refund Refund
	if err := doStripeRequest("POST", "/refunds", form, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}

func doStripeRequest(method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, stripeAPIBase+path, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(config.Config("STRIPE_SECRET_KEY"), "")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("stripe API returned %s: %s", resp.Status, string(respBody))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// VerifyWebhookSignature checks a "t=...,v1=..." signature header against the
// shared webhook secret: HMAC-SHA256 over "<timestamp>.<payload>". The caller
// must not trust the payload before this returns nil.
func VerifyWebhookSignature(payload []byte, header, secret string, now time.Time) error {
	if header == "" {
		return errors.New("missing signature header")
	}

	var timestamp string
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return errors.New("malformed signature header")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return errors.New("invalid signature timestamp")
	}
	if age := now.Sub(time.Unix(ts, 0)); age > signatureTolerance || age < -signatureTolerance {
		return errors.New("signature timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return errors.New("no matching signature found")
}

// SignWebhookPayload produces a header VerifyWebhookSignature accepts. Used by
// tests and local tooling to exercise the webhook path without the gateway.
func SignWebhookPayload(payload []byte, secret string, at time.Time) string {
	timestamp := strconv.FormatInt(at.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}
