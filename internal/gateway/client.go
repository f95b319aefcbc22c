package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ngandu/cimentmart/internal/models"
)

// verification codes of the status-check endpoint
const (
	VerificationSuccess = "0"
	VerificationFailure = "1"
	VerificationPending = "2"
)

const (
	// the charge endpoint is slow, the gateway holds the request while it
	// pushes the confirmation prompt to the payer
	submitTimeout = 60 * time.Second
	checkTimeout  = 10 * time.Second

	// default time of retry after
	delaySeconds = 60
)

// Client is HTTP client of the payment gateway
type Client struct {
	submitClient *http.Client
	checkClient  *http.Client
	baseURL      string
	token        string
}

// NewClient creates new Client instance
func NewClient(baseURL, token string) *Client {
	return &Client{
		submitClient: &http.Client{Timeout: submitTimeout},
		checkClient:  &http.Client{Timeout: checkTimeout},
		baseURL:      baseURL,
		token:        token,
	}
}

// ChargeRequest is body of the charge endpoint
type ChargeRequest struct {
	Numero      string  `json:"Numero"`
	Montant     float64 `json:"Montant"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}

type chargeResponse struct {
	OrderNumber string `json:"orderNumber"`
}

// CheckResult is verdict of the status-check endpoint
type CheckResult struct {
	Verification string `json:"verification"`
	Message      string `json:"message"`
}

// SubmitCharge sends charge request and returns the gateway order number
func (c *Client) SubmitCharge(ctx context.Context, charge ChargeRequest) (string, error) {
	// POST /payment
	url, err := url.JoinPath(c.baseURL, "payment")
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(charge)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.submitClient.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", models.ErrGatewaySubmit
	}

	chResp := chargeResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&chResp); err != nil {
		return "", err
	}
	if chResp.OrderNumber == "" {
		return "", models.ErrGatewaySubmit
	}

	return chResp.OrderNumber, nil
}

// CheckPayment returns current verdict for the gateway order number
func (c *Client) CheckPayment(ctx context.Context, orderNumber string) (*CheckResult, error) {
	// GET /check-payment/{orderNumber}
	url, err := url.JoinPath(c.baseURL, "check-payment", orderNumber)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.checkClient.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		res := CheckResult{}
		if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
			return nil, err
		}
		return &res, nil
	case http.StatusTooManyRequests:
		t := delaySeconds
		if val := resp.Header.Get("Retry-After"); val != "" {
			if n, err := strconv.Atoi(val); err == nil {
				t = n
			}
		}
		return nil, models.NewTooManyRequestsError(time.Duration(t) * time.Second)
	default:
		return nil, models.ErrInternalError
	}
}
