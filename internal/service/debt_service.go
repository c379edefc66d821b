package service

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/spliteasy/spliteasy/internal/calculator"
	"github.com/spliteasy/spliteasy/internal/middleware"
	"github.com/spliteasy/spliteasy/internal/models"
	"github.com/spliteasy/spliteasy/internal/money"
	"github.com/spliteasy/spliteasy/internal/storage"
)

// DebtService computes net balances and the optimized transfer plan from
// the expense and settlement history. Balances are derived on every
// request and never persisted.
type DebtService struct {
	store storage.Store
}

// NewDebtService creates a new DebtService with the given storage backend.
func NewDebtService(store storage.Store) *DebtService {
	return &DebtService{store: store}
}

type balanceEntry struct {
	UserID        string          `json:"user_id"`
	BalancePaisa  int64           `json:"balance_paisa"`
	BalanceRupees decimal.Decimal `json:"balance"`
}

type transferEntry struct {
	FromUserID   string          `json:"from"`
	ToUserID     string          `json:"to"`
	AmountPaisa  int64           `json:"amount_paisa"`
	AmountRupees decimal.Decimal `json:"amount"`
}

type debtsResponse struct {
	Balances  []balanceEntry  `json:"balances"`
	Transfers []transferEntry `json:"transfers,omitempty"`
	Optimized bool            `json:"optimized"`
}

// Get computes balances for the authenticated user's history, or for a
// group when group_id is given. With optimize=true (the default) the
// response includes the minimal transfer plan.
func (s *DebtService) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	groupID := r.URL.Query().Get("group_id")

	optimize := true
	if raw := r.URL.Query().Get("optimize"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "optimize must be true or false")
			return
		}
		optimize = parsed
	}

	// Both reads see the state as of this request; the engine itself does
	// not enforce cross-collection consistency.
	var (
		expenses    []*models.Expense
		settlements []*models.Settlement
		err         error
	)
	if groupID != "" {
		if _, err = s.store.GetGroup(r.Context(), groupID); err != nil {
			respondDomainError(w, err)
			return
		}
		expenses, err = s.store.ListExpensesByGroup(r.Context(), groupID)
		if err == nil {
			settlements, err = s.store.ListSettlementsByGroup(r.Context(), groupID)
		}
	} else {
		expenses, err = s.store.ListExpensesByUser(r.Context(), userID)
		if err == nil {
			settlements, err = s.store.ListSettlementsByUser(r.Context(), userID)
		}
	}
	if err != nil {
		slog.Error("Debt snapshot read failed", "user_id", userID, "group_id", groupID, "error", err)
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	balances, err := calculator.NetBalances(toCalculatorExpenses(expenses), toCalculatorSettlements(settlements))
	if err != nil {
		// Malformed persisted records are a data-integrity defect, not a
		// client error.
		slog.Error("Balance computation failed", "group_id", groupID, "error", err)
		respondError(w, http.StatusInternalServerError, "ledger data integrity error")
		return
	}

	resp := debtsResponse{
		Balances:  toBalanceEntries(balances),
		Optimized: optimize,
	}
	if optimize {
		transfers := calculator.OptimizeTransfers(balances)
		resp.Transfers = make([]transferEntry, len(transfers))
		for i, tr := range transfers {
			resp.Transfers[i] = transferEntry{
				FromUserID:   tr.FromUserID,
				ToUserID:     tr.ToUserID,
				AmountPaisa:  tr.AmountPaisa,
				AmountRupees: money.ToRupees(tr.AmountPaisa),
			}
		}
	}

	slog.Info("Debts computed",
		"user_id", userID,
		"group_id", groupID,
		"expenses", len(expenses),
		"settlements", len(settlements),
		"participants", len(resp.Balances),
		"transfers", len(resp.Transfers),
	)
	respondJSON(w, http.StatusOK, resp)
}

func toCalculatorExpenses(expenses []*models.Expense) []calculator.Expense {
	out := make([]calculator.Expense, len(expenses))
	for i, expense := range expenses {
		shares := make([]calculator.Share, len(expense.Shares))
		for j, share := range expense.Shares {
			shares[j] = calculator.Share{UserID: share.UserID, AmountPaisa: share.AmountPaisa}
		}
		out[i] = calculator.Expense{
			PayerID:     expense.PayerID,
			AmountPaisa: expense.AmountPaisa,
			Shares:      shares,
		}
	}
	return out
}

func toCalculatorSettlements(settlements []*models.Settlement) []calculator.Settlement {
	out := make([]calculator.Settlement, len(settlements))
	for i, settlement := range settlements {
		out[i] = calculator.Settlement{
			FromUserID:  settlement.FromUserID,
			ToUserID:    settlement.ToUserID,
			AmountPaisa: settlement.AmountPaisa,
		}
	}
	return out
}

// toBalanceEntries flattens the balance map into a deterministic,
// user-ID-sorted list with display amounts.
func toBalanceEntries(balances map[string]int64) []balanceEntry {
	entries := make([]balanceEntry, 0, len(balances))
	for userID, paisa := range balances {
		entries = append(entries, balanceEntry{
			UserID:        userID,
			BalancePaisa:  paisa,
			BalanceRupees: money.ToRupees(paisa),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].UserID < entries[j].UserID })
	return entries
}
