package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter/adaptertest"
	"github.com/AminataF33/gestionbudgetback/internal/application/service"
	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/account"
	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/dashboard"
	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/transaction"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/integration/entrypoint/dto"
	"github.com/AminataF33/gestionbudgetback/internal/integration/entrypoint/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router   *gin.Engine
	store    *adaptertest.Store
	userID   uuid.UUID
	checking *entity.Account
	savings  *entity.Account
	food     *entity.Category
}

func newTestServer() *testServer {
	store := adaptertest.NewStore()
	events := &adaptertest.EventRecorder{}
	dispatcher := service.NewEventDispatcher(events)
	updater := service.NewBalanceUpdater(store.Accounts())

	s := &testServer{store: store, userID: uuid.New()}
	s.checking = entity.NewAccount(s.userID, "Main", "", entity.AccountKindChecking, decimal.NewFromInt(100000), "XOF")
	s.savings = entity.NewAccount(s.userID, "Savings", "", entity.AccountKindSavings, decimal.Zero, "XOF")
	store.SeedAccount(s.checking)
	store.SeedAccount(s.savings)
	s.food = entity.NewDefaultCategory("Food", "#F97316", "utensils", entity.CategoryTypeExpense)
	store.SeedCategory(s.food)

	accounts := NewAccountController(
		account.NewCreateAccountUseCase(store.Accounts()),
		account.NewGetAccountUseCase(store.Accounts()),
		account.NewListAccountsUseCase(store.Accounts()),
		account.NewUpdateAccountUseCase(store.Accounts()),
		account.NewDeactivateAccountUseCase(store.Accounts()),
	)
	transactions := NewTransactionController(
		transaction.NewListTransactionsUseCase(store.Transactions()),
		transaction.NewGetTransactionUseCase(store.Transactions()),
		transaction.NewCreateTransactionUseCase(store.Transactions(), store.Accounts(), store.Categories(), store.Transactor(), updater, dispatcher),
		transaction.NewUpdateTransactionUseCase(store.Transactions(), store.Accounts(), store.Categories(), store.Transactor(), updater, dispatcher),
		transaction.NewDeleteTransactionUseCase(store.Transactions(), store.Transactor(), updater, dispatcher),
	)
	dashboards := NewDashboardController(
		dashboard.NewGetSummaryUseCase(store.Accounts(), store.Transactions(), store.Budgets(), store.Goals(), service.NewSpendAggregator(store.Transactions())),
		dashboard.NewGetCategoryBreakdownUseCase(store.Transactions(), store.Categories()),
	)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		if c.GetHeader("X-Anonymous") == "" {
			middleware.SetOwner(c, middleware.Owner{ID: s.userID})
		}
		c.Next()
	})
	api.GET("/accounts", accounts.List)
	api.POST("/accounts", accounts.Create)
	api.GET("/accounts/:id", accounts.Get)
	api.DELETE("/accounts/:id", accounts.Deactivate)
	api.POST("/transactions", transactions.Create)
	api.GET("/transactions", transactions.List)
	api.DELETE("/transactions/:id", transactions.Delete)
	api.GET("/dashboard/category-breakdown", dashboards.GetCategoryBreakdown)

	s.router = router
	return s
}

func (s *testServer) do(method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domainerror.ErrValidation, http.StatusBadRequest},
		{"invalid amount", domainerror.ErrInvalidAmount, http.StatusBadRequest},
		{"invalid transfer", domainerror.ErrInvalidTransfer, http.StatusBadRequest},
		{"unauthorized", domainerror.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not found", domainerror.ErrUserNotFound, http.StatusNotFound},
		{"duplicate", domainerror.ErrEmailAlreadyExists, http.StatusConflict},
		{"concurrent", domainerror.ErrConcurrentModification, http.StatusConflict},
		{"insufficient funds", domainerror.ErrAccountInsufficientFunds, http.StatusUnprocessableEntity},
		{"invariant", domainerror.ErrInvariantViolation, http.StatusUnprocessableEntity},
		{"wrapped", fmt.Errorf("outer: %w", domainerror.ErrNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusForError(tt.err); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestAccountController(t *testing.T) {
	s := newTestServer()

	t.Run("create returns balance as string", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/v1/accounts", map[string]interface{}{
			"name":            "Orange Money",
			"kind":            "checking",
			"initial_balance": "2500.50",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		resp := decode[dto.AccountResponse](t, w)
		if resp.Balance != "2500.5" {
			t.Errorf("expected balance 2500.5, got %s", resp.Balance)
		}
		if resp.Currency != entity.DefaultCurrency {
			t.Errorf("expected default currency, got %s", resp.Currency)
		}
	})

	t.Run("invalid kind is rejected", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/v1/accounts", map[string]interface{}{
			"name": "Crypto",
			"kind": "wallet",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown account is 404", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/accounts/"+uuid.NewString(), nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/accounts/not-a-uuid", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("list requires authentication", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/accounts", nil, "X-Anonymous", "1")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", w.Code)
		}
	})

	t.Run("list includes totals", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/v1/accounts", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		resp := decode[dto.AccountListResponse](t, w)
		if len(resp.Accounts) != 3 {
			t.Errorf("expected 3 accounts, got %d", len(resp.Accounts))
		}
		if resp.Totals.NetWorth != "102500.5" {
			t.Errorf("expected net worth 102500.5, got %s", resp.Totals.NetWorth)
		}
	})
}

func TestTransactionController(t *testing.T) {
	t.Run("expense updates the account balance", func(t *testing.T) {
		s := newTestServer()
		w := s.do(http.MethodPost, "/api/v1/transactions", map[string]interface{}{
			"account_id":  s.checking.ID.String(),
			"category_id": s.food.ID.String(),
			"type":        "expense",
			"amount":      "25000",
			"description": "Market",
			"date":        "2024-03-05",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		resp := decode[dto.TransactionResponse](t, w)
		if resp.Date != "2024-03-05" {
			t.Errorf("expected date 2024-03-05, got %s", resp.Date)
		}
		if got := s.store.Balance(s.checking.ID); !got.Equal(decimal.NewFromInt(75000)) {
			t.Errorf("expected balance 75000, got %s", got)
		}

		w = s.do(http.MethodDelete, "/api/v1/transactions/"+resp.ID, nil)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
		if got := s.store.Balance(s.checking.ID); !got.Equal(decimal.NewFromInt(100000)) {
			t.Errorf("expected balance restored to 100000, got %s", got)
		}
	})

	t.Run("overdraft is rejected with 422", func(t *testing.T) {
		s := newTestServer()
		w := s.do(http.MethodPost, "/api/v1/transactions", map[string]interface{}{
			"account_id":  s.checking.ID.String(),
			"category_id": s.food.ID.String(),
			"type":        "expense",
			"amount":      "150000",
			"description": "Too much",
			"date":        "2024-03-05",
		})
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
		}
		if got := s.store.Balance(s.checking.ID); !got.Equal(decimal.NewFromInt(100000)) {
			t.Errorf("expected balance unchanged, got %s", got)
		}
		if s.store.TransactionCount() != 0 {
			t.Errorf("expected no transaction recorded, got %d", s.store.TransactionCount())
		}
	})

	t.Run("transfer moves money between accounts", func(t *testing.T) {
		s := newTestServer()
		w := s.do(http.MethodPost, "/api/v1/transactions", map[string]interface{}{
			"account_id":             s.checking.ID.String(),
			"destination_account_id": s.savings.ID.String(),
			"type":                   "transfer",
			"amount":                 "40000",
			"description":            "Monthly saving",
			"date":                   "2024-03-05",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		if got := s.store.Balance(s.savings.ID); !got.Equal(decimal.NewFromInt(40000)) {
			t.Errorf("expected savings 40000, got %s", got)
		}
	})

	t.Run("transfer to the same account is rejected", func(t *testing.T) {
		s := newTestServer()
		w := s.do(http.MethodPost, "/api/v1/transactions", map[string]interface{}{
			"account_id":             s.checking.ID.String(),
			"destination_account_id": s.checking.ID.String(),
			"type":                   "transfer",
			"amount":                 "100",
			"description":            "Loop",
			"date":                   "2024-03-05",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("bad date format", func(t *testing.T) {
		s := newTestServer()
		w := s.do(http.MethodPost, "/api/v1/transactions", map[string]interface{}{
			"account_id":  s.checking.ID.String(),
			"type":        "income",
			"amount":      "100",
			"description": "Gift",
			"date":        "05/03/2024",
		})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		resp := decode[dto.ErrorResponse](t, w)
		if resp.Code != string(domainerror.ErrCodeInvalidTransactionDate) {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidTransactionDate, resp.Code)
		}
	})
}

func TestDashboardController_CategoryBreakdown(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name     string
		query    string
		wantCode int
		wantErr  string
	}{
		{"missing start", "?end_date=2024-03-31", http.StatusBadRequest, string(domainerror.ErrCodeMissingStartDate)},
		{"missing end", "?start_date=2024-03-01", http.StatusBadRequest, string(domainerror.ErrCodeMissingEndDate)},
		{"bad format", "?start_date=2024-3-1&end_date=2024-03-31", http.StatusBadRequest, string(domainerror.ErrCodeInvalidDateRange)},
		{"valid range", "?start_date=2024-03-01&end_date=2024-03-31", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodGet, "/api/v1/dashboard/category-breakdown"+tt.query, nil)
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
			if tt.wantErr != "" {
				resp := decode[dto.ErrorResponse](t, w)
				if resp.Code != tt.wantErr {
					t.Errorf("expected code %s, got %s", tt.wantErr, resp.Code)
				}
			}
		})
	}
}

func TestHealthController(t *testing.T) {
	tests := []struct {
		name      string
		db        HealthChecker
		redis     HealthChecker
		wantCode  int
		wantRedis string
	}{
		{
			name:      "all healthy",
			db:        func(context.Context) error { return nil },
			redis:     func(context.Context) error { return nil },
			wantCode:  http.StatusOK,
			wantRedis: "connected",
		},
		{
			name:      "optional dependency down",
			db:        func(context.Context) error { return nil },
			redis:     func(context.Context) error { return errors.New("down") },
			wantCode:  http.StatusOK,
			wantRedis: "disconnected",
		},
		{
			name:      "database down",
			db:        func(context.Context) error { return errors.New("down") },
			redis:     func(context.Context) error { return nil },
			wantCode:  http.StatusServiceUnavailable,
			wantRedis: "connected",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := NewHealthController(tt.db, map[string]HealthChecker{"redis": tt.redis})
			router := gin.New()
			router.GET("/health", controller.Check)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}
			resp := decode[HealthResponse](t, w)
			if resp.Dependencies["redis"] != tt.wantRedis {
				t.Errorf("expected redis %s, got %s", tt.wantRedis, resp.Dependencies["redis"])
			}
		})
	}
}
