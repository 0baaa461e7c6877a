package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active, non-admin user with a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := nextID()
	return createUser(t, db, fmt.Sprintf("user%d", n), fmt.Sprintf("user%d@test.com", n), false)
}

// CreateTestAdmin creates an active admin user.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := nextID()
	return createUser(t, db, fmt.Sprintf("admin%d", n), fmt.Sprintf("admin%d@test.com", n), true)
}

func createUser(t *testing.T, db *gorm.DB, username, email string, admin bool) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		FullName: "Test " + username,
		IsAdmin:  admin,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// Today returns the current calendar date at midnight UTC.
func Today() time.Time {
	return models.CalendarDate(time.Now().UTC())
}

// CreateTestTransaction creates a transaction on the given date. amount is a
// decimal string and may be given unsigned; the stored sign is normalized.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, category, amount string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:   userID,
		Type:     txType,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Date:     date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudgetLimit sets a spending limit for a category.
func CreateTestBudgetLimit(t *testing.T, db *gorm.DB, userID, category, amount string) *models.BudgetLimit {
	t.Helper()

	limit := &models.BudgetLimit{
		UserID:      userID,
		Category:    category,
		LimitAmount: decimal.RequireFromString(amount),
	}
	if err := db.Create(limit).Error; err != nil {
		t.Fatalf("failed to create test budget limit: %v", err)
	}
	return limit
}
