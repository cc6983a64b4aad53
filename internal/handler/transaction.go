package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arkanharyo/laundry-ledger/internal/domain"
	"github.com/arkanharyo/laundry-ledger/internal/logging"
	"github.com/arkanharyo/laundry-ledger/internal/service/transaction"
)

type transactionService interface {
	Create(ctx context.Context, req transaction.CreateRequest) (*domain.Transaction, error)
	Update(ctx context.Context, req transaction.UpdateRequest) (*domain.Transaction, error)
	CarryOn(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	FinishWorking(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	Finish(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	Cancel(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	List(ctx context.Context) ([]domain.Transaction, error)
}

type TransactionHandler struct {
	transactions transactionService
}

func NewTransactionHandler(transactions transactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

type orderRequest struct {
	CustomerName string          `json:"customer_name"`
	Weight       decimal.Decimal `json:"weight"`
	Express      bool            `json:"express"`
	ServiceType  string          `json:"service_type"`
}

func (r orderRequest) Validate() []FieldError {
	var errs []FieldError
	if r.CustomerName == "" {
		errs = append(errs, FieldError{Field: "customer_name", Message: "required"})
	}
	if !r.Weight.IsPositive() {
		errs = append(errs, FieldError{Field: "weight", Message: "must be greater than zero"})
	}
	if !domain.ServiceType(r.ServiceType).IsValid() {
		errs = append(errs, FieldError{Field: "service_type", Message: "must be full_service, wash_only, or ironed_only"})
	}
	return errs
}

func (r orderRequest) transactionType() domain.TransactionType {
	if r.Express {
		return domain.TypeExpress
	}
	return domain.TypeRegular
}

type transactionDTO struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Status      string          `json:"status"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	Price       decimal.Decimal `json:"price"`
	Express     bool            `json:"express"`
	ServiceType string          `json:"service_type"`
	Weight      decimal.Decimal `json:"weight"`
}

func toTransactionDTO(t *domain.Transaction) transactionDTO {
	return transactionDTO{
		ID:          t.ID,
		Date:        t.Date,
		Status:      string(t.Status),
		CustomerID:  t.CustomerID,
		Price:       t.Price,
		Express:     t.Type == domain.TypeExpress,
		ServiceType: string(t.Service),
		Weight:      t.Weight,
	}
}

type statusChangeDTO struct {
	ID      uuid.UUID `json:"id"`
	Status  string    `json:"status"`
	Message string    `json:"message"`
}

func toStatusChangeDTO(t *domain.Transaction) statusChangeDTO {
	return statusChangeDTO{
		ID:      t.ID,
		Status:  string(t.Status),
		Message: fmt.Sprintf("Transaction %s is %s", t.ID, t.Status),
	}
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	txn, err := h.transactions.Create(r.Context(), transaction.CreateRequest{
		CustomerName: req.CustomerName,
		Weight:       req.Weight,
		Type:         req.transactionType(),
		Service:      domain.ServiceType(req.ServiceType),
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create transaction", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toTransactionDTO(txn))
}

func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, appErr := transactionIDFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	txn, err := h.transactions.Update(r.Context(), transaction.UpdateRequest{
		CustomerName:  req.CustomerName,
		TransactionID: id,
		Weight:        req.Weight,
		Type:          req.transactionType(),
		Service:       domain.ServiceType(req.ServiceType),
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to update transaction", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toTransactionDTO(txn))
}

func (h *TransactionHandler) CarryOn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.transactions.CarryOn, "failed to carry on transaction")
}

func (h *TransactionHandler) FinishWorking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.transactions.FinishWorking, "failed to finish working transaction")
}

func (h *TransactionHandler) Finish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.transactions.Finish, "failed to finish transaction")
}

func (h *TransactionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.transactions.Cancel, "failed to cancel transaction")
}

func (h *TransactionHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, uuid.UUID) (*domain.Transaction, error),
	logMsg string,
) {
	id, appErr := transactionIDFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	txn, err := op(r.Context(), id)
	if err != nil {
		logging.FromContext(r.Context()).Error(logMsg, "error", err, "transaction_id", id)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toStatusChangeDTO(txn))
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, appErr := transactionIDFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	txn, err := h.transactions.GetByID(r.Context(), id)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to get transaction", "error", err, "transaction_id", id)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toTransactionDTO(txn))
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	txns, err := h.transactions.List(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list transactions", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]transactionDTO, len(txns))
	for i := range txns {
		dtos[i] = toTransactionDTO(&txns[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}

func transactionIDFromPath(r *http.Request) (uuid.UUID, *AppError) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, ErrTransactionNotFound
	}
	return id, nil
}
