package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spliteasy/spliteasy/internal/models"
	"github.com/spliteasy/spliteasy/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "spliteasy-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteStoreUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := models.NewUser("alice@example.com", "Alice", "hash-a")
	bob := models.NewUser("bob@example.com", "Bob", "hash-b")

	t.Run("CreateUser and lookups", func(t *testing.T) {
		if err := store.CreateUser(ctx, alice); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if err := store.CreateUser(ctx, bob); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if byEmail == nil || byEmail.ID != alice.ID {
			t.Errorf("GetUserByEmail returned %+v, want %s", byEmail, alice.ID)
		}

		byID, err := store.GetUserByID(ctx, bob.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if byID == nil || byID.Email != "bob@example.com" {
			t.Errorf("GetUserByID returned %+v", byID)
		}

		missing, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if missing != nil {
			t.Errorf("expected nil for unknown email, got %+v", missing)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := models.NewUser("alice@example.com", "Alice Again", "hash-x")
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("expected error for duplicate email")
		}
	})

	t.Run("friendships are bidirectional", func(t *testing.T) {
		if err := store.AddFriend(ctx, alice.ID, bob.ID); err != nil {
			t.Fatalf("AddFriend failed: %v", err)
		}

		for _, pair := range [][2]string{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
			ok, err := store.AreFriends(ctx, pair[0], pair[1])
			if err != nil {
				t.Fatalf("AreFriends failed: %v", err)
			}
			if !ok {
				t.Errorf("expected %s and %s to be friends", pair[0], pair[1])
			}
		}

		friends, err := store.ListFriends(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListFriends failed: %v", err)
		}
		if len(friends) != 1 || friends[0].ID != bob.ID {
			t.Errorf("ListFriends returned %+v, want [bob]", friends)
		}
	})
}

func TestSQLiteStoreExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	expense := &models.Expense{
		Description: "Dinner",
		PayerID:     "alice",
		AmountPaisa: 1000,
		Shares: []models.ParticipantShare{
			{UserID: "alice", AmountPaisa: 334},
			{UserID: "bob", AmountPaisa: 333},
			{UserID: "carol", AmountPaisa: 333},
		},
	}

	t.Run("CreateExpense generates ID and timestamp", func(t *testing.T) {
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" {
			t.Error("Expected expense ID to be generated")
		}
		if expense.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
		if expense.Currency != "INR" {
			t.Errorf("Expected default currency INR, got %s", expense.Currency)
		}
	})

	t.Run("GetExpense preserves share order and sums", func(t *testing.T) {
		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}

		if got.AmountPaisa != 1000 {
			t.Errorf("AmountPaisa = %d, want 1000", got.AmountPaisa)
		}
		if len(got.Shares) != 3 {
			t.Fatalf("got %d shares, want 3", len(got.Shares))
		}
		// Creation order decides who absorbed the split remainder.
		if got.Shares[0].UserID != "alice" || got.Shares[0].AmountPaisa != 334 {
			t.Errorf("first share = %+v, want alice/334", got.Shares[0])
		}
		var sum int64
		for _, share := range got.Shares {
			sum += share.AmountPaisa
		}
		if sum != got.AmountPaisa {
			t.Errorf("shares sum to %d, want %d", sum, got.AmountPaisa)
		}
	})

	t.Run("ListExpensesByUser finds participant expenses", func(t *testing.T) {
		expenses, err := store.ListExpensesByUser(ctx, "bob")
		if err != nil {
			t.Fatalf("ListExpensesByUser failed: %v", err)
		}
		if len(expenses) != 1 || expenses[0].ID != expense.ID {
			t.Errorf("ListExpensesByUser returned %d expenses", len(expenses))
		}

		none, err := store.ListExpensesByUser(ctx, "stranger")
		if err != nil {
			t.Fatalf("ListExpensesByUser failed: %v", err)
		}
		if len(none) != 0 {
			t.Errorf("expected no expenses for stranger, got %d", len(none))
		}
	})

	t.Run("GetExpense not found", func(t *testing.T) {
		_, err := store.GetExpense(ctx, "does-not-exist")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetExpense error = %v, want ErrNotFound", err)
		}
	})
}

func TestSQLiteStoreSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	settlement := &models.Settlement{
		FromUserID:  "bob",
		ToUserID:    "alice",
		AmountPaisa: 333,
		Note:        "dinner repayment",
		CreatedBy:   "bob",
	}

	if err := store.CreateSettlement(ctx, settlement); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}
	if settlement.ID == "" {
		t.Error("Expected settlement ID to be generated")
	}

	for _, userID := range []string{"bob", "alice"} {
		settlements, err := store.ListSettlementsByUser(ctx, userID)
		if err != nil {
			t.Fatalf("ListSettlementsByUser(%s) failed: %v", userID, err)
		}
		if len(settlements) != 1 {
			t.Fatalf("ListSettlementsByUser(%s) returned %d settlements, want 1", userID, len(settlements))
		}
		if settlements[0].AmountPaisa != 333 || settlements[0].Note != "dinner repayment" {
			t.Errorf("settlement = %+v", settlements[0])
		}
	}
}

func TestSQLiteStoreGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{
		Name:    "Roommates",
		Members: []string{"alice", "bob", "carol"},
	}

	t.Run("CreateGroup generates ID and code", func(t *testing.T) {
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Error("Expected group ID to be generated")
		}
		if len(group.Code) != 6 {
			t.Errorf("Expected 6-character code, got %q", group.Code)
		}
	})

	t.Run("GetGroupByCode is case-insensitive", func(t *testing.T) {
		for _, code := range []string{group.Code, "x" + group.Code} {
			got, err := store.GetGroupByCode(ctx, code)
			if code == group.Code {
				if err != nil {
					t.Fatalf("GetGroupByCode(%q) failed: %v", code, err)
				}
				if got.ID != group.ID || len(got.Members) != 3 {
					t.Errorf("GetGroupByCode returned %+v", got)
				}
			} else if !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("GetGroupByCode(%q) error = %v, want ErrNotFound", code, err)
			}
		}
	})

	t.Run("DeleteGroup cascades expenses and settlements", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:     group.ID,
			Description: "Groceries",
			PayerID:     "alice",
			AmountPaisa: 900,
			Shares: []models.ParticipantShare{
				{UserID: "alice", AmountPaisa: 300},
				{UserID: "bob", AmountPaisa: 300},
				{UserID: "carol", AmountPaisa: 300},
			},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		settlement := &models.Settlement{
			GroupID: group.ID, FromUserID: "bob", ToUserID: "alice",
			AmountPaisa: 300, CreatedBy: "bob",
		}
		if err := store.CreateSettlement(ctx, settlement); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}

		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}

		if _, err := store.GetExpense(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected expense to cascade, got %v", err)
		}
		settlements, err := store.ListSettlementsByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListSettlementsByGroup failed: %v", err)
		}
		if len(settlements) != 0 {
			t.Errorf("expected settlements to cascade, got %d", len(settlements))
		}

		if err := store.DeleteGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second DeleteGroup error = %v, want ErrNotFound", err)
		}
	})
}
