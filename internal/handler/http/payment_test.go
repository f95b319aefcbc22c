package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/ngandu/cimentmart/internal/handler/http/mocks"
	"github.com/ngandu/cimentmart/internal/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPaymentHandler_ConfirmUserPayment(t *testing.T) {
	tests := []struct {
		name           string
		token          *models.TokenPayload
		body           string
		setup          func(t *testing.T) *mocks.MockPaymentService
		wantStatusCode int
	}{
		{
			name: "confirmed_payment_return_200",
			token: &models.TokenPayload{
				UserID: "u1",
				Role:   models.RoleUser,
			},
			body: `{"paymentMethod":"mobile","accountDetails":{"phoneNumber":"243812345678","operator":"mpesa"}}`,
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(&models.Payment{
					ID:      "o1",
					OrderID: "o1",
					UserID:  "u1",
					Status:  models.PaymentStatusPaid,
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "declined_payment_return_402",
			token: &models.TokenPayload{
				UserID: "u1",
				Role:   models.RoleUser,
			},
			body: `{"paymentMethod":"mobile","accountDetails":{"phoneNumber":"243812345678","operator":"mpesa"}}`,
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(&models.Payment{
					ID:      "o1",
					OrderID: "o1",
					UserID:  "u1",
					Status:  models.PaymentStatusFailed,
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusPaymentRequired,
		},
		{
			name: "unauthorized_request_return_401",
			body: `{"paymentMethod":"mobile","accountDetails":{"phoneNumber":"243812345678"}}`,
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().Confirm(gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "no_pending_order_return_404",
			token: &models.TokenPayload{
				UserID: "u1",
				Role:   models.RoleUser,
			},
			body: `{"paymentMethod":"mobile","accountDetails":{"phoneNumber":"243812345678"}}`,
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(nil, models.ErrNoPendingOrder).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "invalid_phone_return_422",
			token: &models.TokenPayload{
				UserID: "u1",
				Role:   models.RoleUser,
			},
			body: `{"paymentMethod":"mobile","accountDetails":{"phoneNumber":"0812345678"}}`,
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(nil, models.ErrInvalidPhoneNumber).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name: "gateway_submit_error_return_502",
			token: &models.TokenPayload{
				UserID: "u1",
				Role:   models.RoleUser,
			},
			body: `{"paymentMethod":"mobile","accountDetails":{"phoneNumber":"243812345678"}}`,
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(nil, models.ErrGatewaySubmit).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusBadGateway,
		},
		{
			name: "confirmation_timeout_return_504",
			token: &models.TokenPayload{
				UserID: "u1",
				Role:   models.RoleUser,
			},
			body: `{"paymentMethod":"mobile","accountDetails":{"phoneNumber":"243812345678"}}`,
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(nil, models.ErrConfirmationTimeout).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusGatewayTimeout,
		},
		{
			name: "internal_error_return_500",
			token: &models.TokenPayload{
				UserID: "u1",
				Role:   models.RoleUser,
			},
			body: `{"paymentMethod":"mobile","accountDetails":{"phoneNumber":"243812345678"}}`,
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(nil, models.ErrInternalError).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/user/payments/o1", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal("cannot create request", zap.Error(err))
			}

			w := httptest.NewRecorder()
			st := tt.setup(t)
			ctx := req.Context()
			if tt.token != nil {
				ctx = context.WithValue(ctx, authPayloadKey, tt.token)
			}

			handler := NewPaymentHandler(st)
			h := handler.ConfirmUserPayment()
			h(w, req.WithContext(ctx))

			res := w.Result()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
			defer res.Body.Close()
		})
	}
}

func TestPaymentHandler_GetUserPayment(t *testing.T) {
	tests := []struct {
		name           string
		token          *models.TokenPayload
		setup          func(t *testing.T) *mocks.MockPaymentService
		wantStatusCode int
	}{
		{
			name: "valid_request_return_200",
			token: &models.TokenPayload{
				UserID: "u1",
				Role:   models.RoleUser,
			},
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().GetPayment(gomock.Any(), gomock.Any(), gomock.Any()).Return(&models.Payment{
					ID:      "o1",
					OrderID: "o1",
					UserID:  "u1",
					Status:  models.PaymentStatusPaid,
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "payment_not_found_return_404",
			token: &models.TokenPayload{
				UserID: "u1",
				Role:   models.RoleUser,
			},
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().GetPayment(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, models.ErrDataNotFound).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "unauthorized_request_return_401",
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().GetPayment(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "/api/user/payments/o1", nil)
			if err != nil {
				t.Fatal("cannot create request", zap.Error(err))
			}

			w := httptest.NewRecorder()
			st := tt.setup(t)
			ctx := req.Context()
			if tt.token != nil {
				ctx = context.WithValue(ctx, authPayloadKey, tt.token)
			}

			handler := NewPaymentHandler(st)
			h := handler.GetUserPayment()
			h(w, req.WithContext(ctx))

			res := w.Result()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
			defer res.Body.Close()
		})
	}
}
