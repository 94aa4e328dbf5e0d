package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"papertrade/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password, a unique username and 10,000.00 cash.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithCash(t, db, decimal.NewFromInt(10000))
}

// CreateTestUserWithCash creates a user holding the given cash balance.
func CreateTestUserWithCash(t *testing.T, db *gorm.DB, cash decimal.Decimal) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("trader%d", nextID()), cash)
}

// CreateTestUserWithUsername creates a user with the given username and cash.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string, cash decimal.Decimal) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Cash:         cash,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction appends a ledger row. Rows created by successive calls
// get strictly increasing timestamps so first-trade ordering is deterministic.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, symbol string, quantity int64, unitPrice string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:    userID,
		Type:      txType,
		Symbol:    symbol,
		Quantity:  quantity,
		UnitPrice: decimal.RequireFromString(unitPrice),
		CreatedAt: fixtureTime(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

var clock atomic.Int64

// fixtureTime returns a UTC timestamp one second after the previous call.
func fixtureTime() time.Time {
	base := time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(clock.Add(1)) * time.Second)
}
