package service

import (
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

// SettlementService handles recording and listing settlements.
type SettlementService struct {
	store          storage.Store
	publisher      events.Publisher
	maxAmountPaisa int64
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(store storage.Store, publisher events.Publisher, maxAmountPaisa int64) *SettlementService {
	return &SettlementService{
		store:          store,
		publisher:      publisher,
		maxAmountPaisa: maxAmountPaisa,
	}
}

type createSettlementRequest struct {
	ToUserID string          `json:"to_user_id" validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
	GroupID  string          `json:"group_id,omitempty"`
	Note     string          `json:"note,omitempty" validate:"max=200"`
}

type settlementResponse struct {
	ID           string          `json:"id"`
	GroupID      string          `json:"group_id,omitempty"`
	FromUserID   string          `json:"from_user"`
	ToUserID     string          `json:"to_user"`
	AmountPaisa  int64           `json:"amount_paisa"`
	AmountRupees decimal.Decimal `json:"amount"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    int64           `json:"created_at"`
}

func toSettlementResponse(settlement *models.Settlement) settlementResponse {
	return settlementResponse{
		ID:           settlement.ID,
		GroupID:      settlement.GroupID,
		FromUserID:   settlement.FromUserID,
		ToUserID:     settlement.ToUserID,
		AmountPaisa:  settlement.AmountPaisa,
		AmountRupees: money.ToRupees(settlement.AmountPaisa),
		Note:         settlement.Note,
		CreatedAt:    settlement.CreatedAt,
	}
}

// Create records a payment the authenticated user made to another user
// outside the ledger.
func (s *SettlementService) Create(w http.ResponseWriter, r *http.Request) {
	fromUserID := middleware.GetUserID(r.Context())

	var req createSettlementRequest
	if err := decodeRequest(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "recipient user ID is required")
		return
	}

	if req.ToUserID == fromUserID {
		respondError(w, http.StatusBadRequest, "cannot settle with yourself")
		return
	}

	amountPaisa := money.FromRupees(req.Amount)
	if err := money.ValidateMax(amountPaisa, s.maxAmountPaisa); err != nil {
		respondDomainError(w, err)
		return
	}

	recipient, err := s.store.GetUserByID(r.Context(), req.ToUserID)
	if err != nil {
		slog.Error("Settlement recipient lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	if recipient == nil {
		respondError(w, http.StatusNotFound, "recipient user not found")
		return
	}

	settlement := &models.Settlement{
		GroupID:     req.GroupID,
		FromUserID:  fromUserID,
		ToUserID:    req.ToUserID,
		AmountPaisa: amountPaisa,
		Note:        req.Note,
		CreatedBy:   fromUserID,
	}
	if err := s.store.CreateSettlement(r.Context(), settlement); err != nil {
		slog.Error("Create settlement failed", "from_user_id", fromUserID, "error", err)
		respondDomainError(w, err)
		return
	}

	if err := s.publisher.Publish(r.Context(), events.LedgerEvent{
		Type:        events.TypeSettlementRecorded,
		GroupID:     settlement.GroupID,
		ActorID:     fromUserID,
		RecordID:    settlement.ID,
		AmountPaisa: settlement.AmountPaisa,
		OccurredAt:  time.Now().Unix(),
	}); err != nil {
		slog.Warn("Failed to publish settlement event", "settlement_id", settlement.ID, "error", err)
	}

	slog.Info("Settlement recorded",
		"settlement_id", settlement.ID,
		"from_user_id", fromUserID,
		"to_user_id", settlement.ToUserID,
		"amount_paisa", settlement.AmountPaisa,
	)
	respondJSON(w, http.StatusCreated, toSettlementResponse(settlement))
}

// List returns settlements the authenticated user paid or received, or all
// settlements of a group when group_id is given.
func (s *SettlementService) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var (
		settlements []*models.Settlement
		err         error
	)
	if groupID := r.URL.Query().Get("group_id"); groupID != "" {
		settlements, err = s.store.ListSettlementsByGroup(r.Context(), groupID)
	} else {
		settlements, err = s.store.ListSettlementsByUser(r.Context(), userID)
	}
	if err != nil {
		slog.Error("List settlements failed", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	out := make([]settlementResponse, 0, len(settlements))
	for _, settlement := range settlements {
		out = append(out, toSettlementResponse(settlement))
	}
	respondJSON(w, http.StatusOK, out)
}
