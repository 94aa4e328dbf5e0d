package models

import (
	"time"

	"papertrade/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is the side of a ledger entry.
type TransactionType string

const (
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeSale     TransactionType = "sale"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypePurchase || t == TransactionTypeSale
}

// Transaction is one append-only ledger entry for a buy or sell.
// There is no UpdatedAt or DeletedAt: rows are written once and never changed.
type Transaction struct {
	ID        string          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string          `gorm:"type:uuid;not null;index:idx_transactions_user_symbol_type,priority:1" json:"user_id"`
	Type      TransactionType `gorm:"size:16;not null;index:idx_transactions_user_symbol_type,priority:3" json:"type"`
	Symbol    string          `gorm:"size:20;not null;index:idx_transactions_user_symbol_type,priority:2" json:"symbol"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"unit_price"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
}

// Total returns quantity × unit price.
func (t *Transaction) Total() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(t.Quantity))
}

// BeforeCreate hook generates a UUIDv7 for new records
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New()
	}
	return nil
}
