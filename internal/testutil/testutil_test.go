package testutil_test

import (
	"testing"

	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)

	var count int64
	for _, table := range []string{"users", "transactions", "budget_limits", "system_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}
	admin := testutil.CreateTestAdmin(t, db)
	if !admin.IsAdmin {
		t.Error("expected admin fixture to be an admin")
	}

	tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "food", "42.50", testutil.Today())
	if tx.Amount.String() != "-42.5" {
		t.Errorf("expected expense stored as -42.5, got %s", tx.Amount)
	}

	limit := testutil.CreateTestBudgetLimit(t, db, user.ID, "food", "300")
	if limit.LimitAmount.String() != "300" {
		t.Errorf("expected limit 300, got %s", limit.LimitAmount)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrTransactionNotFound, "custom message")
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
