// Package ledger is the append-only store of trades and the cash balance they move.
package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/models"
	"papertrade/internal/pagination"
)

// Entry is the part of a ledger row needed to fold a position.
type Entry struct {
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Filter narrows a history listing. Zero values mean "no filter".
type Filter struct {
	Symbol string
	Type   *models.TransactionType
	From   *time.Time
	To     *time.Time
}

// Store reads and appends ledger rows and adjusts cash balances.
// Rows are append-only: there is no update or delete.
type Store interface {
	DistinctSymbols(ctx context.Context, userID string) ([]string, error)
	TransactionsOf(ctx context.Context, userID, symbol string, txType models.TransactionType) ([]Entry, error)
	AppendTransaction(ctx context.Context, t *models.Transaction) error
	CashBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	AdjustCash(ctx context.Context, userID string, delta decimal.Decimal) error
	HeldQuantity(ctx context.Context, userID, symbol string) (int64, error)
	History(ctx context.Context, userID string, filter Filter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	Atomic(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db   *gorm.DB
	inTx bool
}

// NewStore creates a gorm-backed ledger store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DistinctSymbols returns every symbol the user has traded, in order of first trade.
func (s *gormStore) DistinctSymbols(ctx context.Context, userID string) ([]string, error) {
	symbols := []string{}
	err := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Group("symbol").
		Order("MIN(created_at) ASC, symbol ASC").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return symbols, nil
}

// TransactionsOf returns quantity and price of every row of one type for a symbol, oldest first.
func (s *gormStore) TransactionsOf(ctx context.Context, userID, symbol string, txType models.TransactionType) ([]Entry, error) {
	var rows []models.Transaction
	err := s.db.WithContext(ctx).
		Select("quantity", "unit_price").
		Where("user_id = ? AND symbol = ? AND type = ?", userID, symbol, txType).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = Entry{Quantity: r.Quantity, UnitPrice: r.UnitPrice}
	}
	return entries, nil
}

// AppendTransaction validates and inserts a new ledger row.
func (s *gormStore) AppendTransaction(ctx context.Context, t *models.Transaction) error {
	if !t.Type.Valid() {
		return apperrors.ErrInvalidTransactionType
	}
	t.Symbol = strings.ToUpper(strings.TrimSpace(t.Symbol))
	if t.UserID == "" || t.Symbol == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "user and symbol are required")
	}
	if t.Quantity <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be positive")
	}
	if !t.UnitPrice.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unit price must be positive")
	}

	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CashBalance returns the user's cash. Inside Atomic on Postgres the user row
// stays locked until the transaction ends.
func (s *gormStore) CashBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var user models.User
	q := s.db.WithContext(ctx).Select("id", "cash")
	if s.inTx && s.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Where("id = ?", userID).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, apperrors.ErrUserNotFound
		}
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user.Cash, nil
}

// AdjustCash adds delta (which may be negative) to the user's cash.
func (s *gormStore) AdjustCash(ctx context.Context, userID string, delta decimal.Decimal) error {
	cash, err := s.CashBalance(ctx, userID)
	if err != nil {
		return err
	}

	updated := cash.Add(delta)
	if updated.IsNegative() {
		return apperrors.ErrInsufficientFunds
	}

	err = s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("cash", updated).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// HeldQuantity returns bought minus sold shares for a symbol.
func (s *gormStore) HeldQuantity(ctx context.Context, userID, symbol string) (int64, error) {
	var held int64
	err := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN quantity ELSE -quantity END), 0)", models.TransactionTypePurchase).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Row().Scan(&held)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return held, nil
}

// History returns a page of the user's ledger, newest first.
func (s *gormStore) History(ctx context.Context, userID string, filter Filter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyFilter(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyFilter(q *gorm.DB, f Filter) *gorm.DB {
	if f.Symbol != "" {
		q = q.Where("symbol = ?", strings.ToUpper(strings.TrimSpace(f.Symbol)))
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}
	return q
}

// Atomic runs fn in a single database transaction. Nested calls reuse the
// outer transaction.
func (s *gormStore) Atomic(ctx context.Context, fn func(Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx, inTx: true})
	})
}
