package service

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spliteasy/spliteasy/internal/events"
	"github.com/spliteasy/spliteasy/internal/middleware"
	"github.com/spliteasy/spliteasy/internal/models"
	"github.com/spliteasy/spliteasy/internal/money"
	"github.com/spliteasy/spliteasy/internal/storage"
)

// ExpenseService handles expense creation and listing.
type ExpenseService struct {
	store           storage.Store
	publisher       events.Publisher
	maxAmountPaisa  int64
	maxParticipants int
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(store storage.Store, publisher events.Publisher, maxAmountPaisa int64, maxParticipants int) *ExpenseService {
	return &ExpenseService{
		store:           store,
		publisher:       publisher,
		maxAmountPaisa:  maxAmountPaisa,
		maxParticipants: maxParticipants,
	}
}

type createExpenseRequest struct {
	Description  string          `json:"description" validate:"required,max=200"`
	Amount       decimal.Decimal `json:"amount"`
	Participants []string        `json:"participants" validate:"required,min=1,dive,required"`
	GroupID      string          `json:"group_id,omitempty"`
}

type shareResponse struct {
	UserID      string          `json:"user_id"`
	SharePaisa  int64           `json:"share_paisa"`
	ShareRupees decimal.Decimal `json:"share"`
}

type expenseResponse struct {
	ID           string          `json:"id"`
	GroupID      string          `json:"group_id,omitempty"`
	Description  string          `json:"description"`
	PayerID      string          `json:"payer"`
	AmountPaisa  int64           `json:"amount_paisa"`
	AmountRupees decimal.Decimal `json:"amount"`
	Participants []string        `json:"participants"`
	Shares       []shareResponse `json:"participant_shares"`
	Currency     string          `json:"currency"`
	CreatedAt    int64           `json:"created_at"`
}

func toExpenseResponse(expense *models.Expense) expenseResponse {
	shares := make([]shareResponse, len(expense.Shares))
	for i, share := range expense.Shares {
		shares[i] = shareResponse{
			UserID:      share.UserID,
			SharePaisa:  share.AmountPaisa,
			ShareRupees: money.ToRupees(share.AmountPaisa),
		}
	}
	return expenseResponse{
		ID:           expense.ID,
		GroupID:      expense.GroupID,
		Description:  expense.Description,
		PayerID:      expense.PayerID,
		AmountPaisa:  expense.AmountPaisa,
		AmountRupees: money.ToRupees(expense.AmountPaisa),
		Participants: expense.Participants,
		Shares:       shares,
		Currency:     expense.Currency,
		CreatedAt:    expense.CreatedAt,
	}
}

// normalizeParticipants removes duplicates while preserving first-occurrence
// order, and appends the payer if absent. Order matters: the first
// total%n participants absorb the split remainder.
func normalizeParticipants(participants []string, payerID string) []string {
	seen := make(map[string]bool, len(participants)+1)
	out := make([]string, 0, len(participants)+1)
	for _, p := range participants {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	if !seen[payerID] {
		out = append(out, payerID)
	}
	return out
}

// Create records a new expense. The rupee amount is converted to integer
// paisa, validated, and split exactly among the participants; the payer is
// always included.
func (s *ExpenseService) Create(w http.ResponseWriter, r *http.Request) {
	payerID := middleware.GetUserID(r.Context())

	var req createExpenseRequest
	if err := decodeRequest(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "description and at least one participant are required")
		return
	}

	amountPaisa := money.FromRupees(req.Amount)
	if err := money.ValidateMax(amountPaisa, s.maxAmountPaisa); err != nil {
		respondDomainError(w, err)
		return
	}

	participants := normalizeParticipants(req.Participants, payerID)
	if len(participants) > s.maxParticipants {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("too many participants (max %d)", s.maxParticipants))
		return
	}

	shares, err := money.SplitEqually(amountPaisa, len(participants))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	expense := &models.Expense{
		GroupID:      req.GroupID,
		Description:  req.Description,
		PayerID:      payerID,
		AmountPaisa:  amountPaisa,
		Participants: participants,
		Shares:       make([]models.ParticipantShare, len(participants)),
	}
	for i, participant := range participants {
		expense.Shares[i] = models.ParticipantShare{UserID: participant, AmountPaisa: shares[i]}
	}

	if err := s.store.CreateExpense(r.Context(), expense); err != nil {
		slog.Error("Create expense failed", "payer_id", payerID, "error", err)
		respondDomainError(w, err)
		return
	}

	if err := s.publisher.Publish(r.Context(), events.LedgerEvent{
		Type:        events.TypeExpenseCreated,
		GroupID:     expense.GroupID,
		ActorID:     payerID,
		RecordID:    expense.ID,
		AmountPaisa: expense.AmountPaisa,
		OccurredAt:  time.Now().Unix(),
	}); err != nil {
		slog.Warn("Failed to publish expense event", "expense_id", expense.ID, "error", err)
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"payer_id", payerID,
		"amount_paisa", expense.AmountPaisa,
		"participants", len(participants),
	)
	respondJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

// List returns expenses the authenticated user participates in, or all
// expenses of a group when group_id is given.
func (s *ExpenseService) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var (
		expenses []*models.Expense
		err      error
	)
	if groupID := r.URL.Query().Get("group_id"); groupID != "" {
		expenses, err = s.store.ListExpensesByGroup(r.Context(), groupID)
	} else {
		expenses, err = s.store.ListExpensesByUser(r.Context(), userID)
	}
	if err != nil {
		slog.Error("List expenses failed", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to fetch expenses")
		return
	}

	out := make([]expenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		out = append(out, toExpenseResponse(expense))
	}
	respondJSON(w, http.StatusOK, out)
}
