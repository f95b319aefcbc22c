package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ngandu/cimentmart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SubmitCharge(t *testing.T) {
	var gotAuth string
	var gotCharge ChargeRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/payment", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotCharge))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"orderNumber": "abc243812345678"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-token")

	orderNumber, err := client.SubmitCharge(context.Background(), ChargeRequest{
		Numero:      "243812345678",
		Montant:     280000,
		Currency:    "CDF",
		Description: "Commande ciment o1",
	})
	require.NoError(t, err)

	assert.Equal(t, "abc243812345678", orderNumber)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "243812345678", gotCharge.Numero)
	assert.Equal(t, float64(280000), gotCharge.Montant)
}

func TestClient_SubmitCharge_NoOrderNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "transaction en cours"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-token")

	_, err := client.SubmitCharge(context.Background(), ChargeRequest{Numero: "243812345678", Montant: 1000})
	assert.ErrorIs(t, err, models.ErrGatewaySubmit)
}

func TestClient_SubmitCharge_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-token")

	_, err := client.SubmitCharge(context.Background(), ChargeRequest{Numero: "243812345678", Montant: 1000})
	assert.ErrorIs(t, err, models.ErrGatewaySubmit)
}

func TestClient_CheckPayment(t *testing.T) {
	tests := []struct {
		name             string
		verification     string
		wantVerification string
	}{
		{name: "success", verification: "0", wantVerification: VerificationSuccess},
		{name: "failure", verification: "1", wantVerification: VerificationFailure},
		{name: "pending", verification: "2", wantVerification: VerificationPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/check-payment/abc243812345678", r.URL.Path)

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(CheckResult{Verification: tt.verification, Message: "ok"})
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "secret-token")

			res, err := client.CheckPayment(context.Background(), "abc243812345678")
			require.NoError(t, err)
			assert.Equal(t, tt.wantVerification, res.Verification)
		})
	}
}

func TestClient_CheckPayment_TooManyRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-token")

	_, err := client.CheckPayment(context.Background(), "abc243812345678")

	var tooMany models.TooManyRequestsError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, 30*time.Second, tooMany.RetryAfter)
}
