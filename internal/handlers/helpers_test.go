package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"papertrade/internal/ledger"
	"papertrade/internal/middleware"
	"papertrade/internal/models"
	"papertrade/internal/pagination"
	"papertrade/internal/quote"
	"papertrade/internal/services"
	"papertrade/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	registerFn              func(username, password, confirmation string) (*models.User, error)
	getUserByUsernameFn     func(username string) (*models.User, error)
	getUserByIDFn           func(id string) (*models.User, error)
	attemptLoginFn          func(username, password string) (*models.User, error)
	storeRefreshTokenHashFn func(userID, tokenHash string) error
	getRefreshTokenHashFn   func(userID string) (string, error)
	clearRefreshTokenHashFn func(userID string) error
}

var _ services.UserServicer = (*mockUserService)(nil)

func (m *mockUserService) Register(username, password, confirmation string) (*models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(username, password, confirmation)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByUsername(username string) (*models.User, error) {
	if m.getUserByUsernameFn != nil {
		return m.getUserByUsernameFn(username)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{Base: models.Base{ID: id}}, nil
}

func (m *mockUserService) AttemptLogin(username, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(username, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) StoreRefreshTokenHash(userID, tokenHash string) error {
	if m.storeRefreshTokenHashFn != nil {
		return m.storeRefreshTokenHashFn(userID, tokenHash)
	}
	return nil
}

func (m *mockUserService) GetRefreshTokenHash(userID string) (string, error) {
	if m.getRefreshTokenHashFn != nil {
		return m.getRefreshTokenHashFn(userID)
	}
	return "", nil
}

func (m *mockUserService) ClearRefreshTokenHash(userID string) error {
	if m.clearRefreshTokenHashFn != nil {
		return m.clearRefreshTokenHashFn(userID)
	}
	return nil
}

type mockTradeService struct {
	buyFn        func(ctx context.Context, userID, symbol string, shares int64) (*models.Transaction, error)
	sellFn       func(ctx context.Context, userID, symbol string, shares int64) (*models.Transaction, error)
	getHistoryFn func(ctx context.Context, userID string, filter ledger.Filter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
}

var _ services.TradeServicer = (*mockTradeService)(nil)

func (m *mockTradeService) Buy(ctx context.Context, userID, symbol string, shares int64) (*models.Transaction, error) {
	if m.buyFn != nil {
		return m.buyFn(ctx, userID, symbol, shares)
	}
	return &models.Transaction{}, nil
}

func (m *mockTradeService) Sell(ctx context.Context, userID, symbol string, shares int64) (*models.Transaction, error) {
	if m.sellFn != nil {
		return m.sellFn(ctx, userID, symbol, shares)
	}
	return &models.Transaction{}, nil
}

func (m *mockTradeService) GetHistory(ctx context.Context, userID string, filter ledger.Filter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if m.getHistoryFn != nil {
		return m.getHistoryFn(ctx, userID, filter, page)
	}
	resp := pagination.NewPageResponse[models.Transaction](nil, 1, 20, 0)
	return &resp, nil
}

type mockPortfolioService struct {
	getPortfolioFn func(ctx context.Context, userID string) (*services.PortfolioSummary, error)
}

var _ services.PortfolioServicer = (*mockPortfolioService)(nil)

func (m *mockPortfolioService) GetPortfolio(ctx context.Context, userID string) (*services.PortfolioSummary, error) {
	if m.getPortfolioFn != nil {
		return m.getPortfolioFn(ctx, userID)
	}
	return &services.PortfolioSummary{}, nil
}

type mockQuoteService struct {
	getQuoteFn func(ctx context.Context, symbol string) (*quote.Quote, error)
}

var _ services.QuoteServicer = (*mockQuoteService)(nil)

func (m *mockQuoteService) GetQuote(ctx context.Context, symbol string) (*quote.Quote, error) {
	if m.getQuoteFn != nil {
		return m.getQuoteFn(ctx, symbol)
	}
	return &quote.Quote{Symbol: symbol}, nil
}

type auditCall struct {
	userID, action, resourceType, resourceID string
	changes                                  map[string]interface{}
}

type mockAuditService struct {
	calls []auditCall
}

var _ services.AuditServicer = (*mockAuditService)(nil)

func (m *mockAuditService) Log(userID, action, resourceType, resourceID, _ string, changes map[string]interface{}) {
	m.calls = append(m.calls, auditCall{userID, action, resourceType, resourceID, changes})
}

// --- test helpers ---

const testUserID = "0190a3e4-0000-7000-8000-000000000001"

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func newTestIssuer() *middleware.TokenIssuer {
	return middleware.NewTokenIssuer("handler-test-secret", 15*time.Minute, time.Hour)
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
