package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tunagu-ab/tunagatya-app/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

type MockWalletRepo struct {
	mock.Mock
}

func (m *MockWalletRepo) GetBalance(ctx context.Context, userID int) (*Balance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Balance), args.Error(1)
}

func (m *MockWalletRepo) Charge(ctx context.Context, userID, amount int) (int, error) {
	args := m.Called(ctx, userID, amount)
	return args.Int(0), args.Error(1)
}

func (m *MockWalletRepo) GetTransactions(ctx context.Context, userID, limit, offset int) ([]Transaction, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Transaction), args.Error(1)
}

func setupWalletRouter(repo Repository, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set("user_id", userID)
		}
		c.Next()
	})

	h := NewHandler(repo)
	r.GET("/api/wallet", h.GetBalance)
	r.POST("/api/charge", h.Charge)
	r.GET("/api/wallet/transactions", h.ListTransactions)
	return r
}

func TestChargeHandler_Success(t *testing.T) {
	repo := new(MockWalletRepo)
	repo.On("Charge", mock.Anything, 10, 1000).Return(2000, nil)

	router := setupWalletRouter(repo, 10)
	w := httptest.NewRecorder()
	body := bytes.NewBufferString(`{"amount": 1000}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/charge", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "1000ポイントをチャージしました！", resp["message"])
	require.Equal(t, float64(2000), resp["new_balance"])
	repo.AssertExpectations(t)
}

func TestChargeHandler_RejectsNonPositiveAmount(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero", `{"amount": 0}`},
		{"negative", `{"amount": -500}`},
		{"missing", `{}`},
		{"not json", `amount=100`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockWalletRepo)

			router := setupWalletRouter(repo, 10)
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/api/charge", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Equal(t, "Amount must be positive", resp["message"])
			repo.AssertNotCalled(t, "Charge")
		})
	}
}

func TestChargeHandler_RequiresAuth(t *testing.T) {
	repo := new(MockWalletRepo)

	router := setupWalletRouter(repo, 0)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/charge", bytes.NewBufferString(`{"amount": 1000}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	repo.AssertNotCalled(t, "Charge")
}

func TestGetBalanceHandler_FreshWalletReadsZero(t *testing.T) {
	repo := new(MockWalletRepo)
	repo.On("GetBalance", mock.Anything, 10).Return(&Balance{UserID: 10, CurrentPoints: 0}, nil)

	router := setupWalletRouter(repo, 10)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/wallet", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp Balance
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.CurrentPoints)
}
