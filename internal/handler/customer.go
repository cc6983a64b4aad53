package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arkanharyo/laundry-ledger/internal/domain"
	"github.com/arkanharyo/laundry-ledger/internal/logging"
)

type customerService interface {
	CreateCustomer(ctx context.Context, name, contact string) (*domain.Customer, error)
	GetBalance(ctx context.Context, name string) (decimal.Decimal, error)
	AdjustBalance(ctx context.Context, name string, delta decimal.Decimal) (decimal.Decimal, error)
}

type CustomerHandler struct {
	customers customerService
}

func NewCustomerHandler(customers customerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

type createCustomerRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

func (r createCustomerRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	}
	if r.Contact == "" {
		errs = append(errs, FieldError{Field: "contact", Message: "required"})
	}
	return errs
}

type customerDTO struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Contact   string          `json:"contact"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

func toCustomerDTO(c *domain.Customer) customerDTO {
	return customerDTO{
		ID:        c.ID,
		Name:      c.Name,
		Contact:   c.Contact,
		Balance:   c.Balance,
		CreatedAt: c.CreatedAt,
	}
}

type balanceDTO struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	customer, err := h.customers.CreateCustomer(r.Context(), req.Name, req.Contact)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create customer", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toCustomerDTO(customer))
}

func (h *CustomerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	balance, err := h.customers.GetBalance(r.Context(), name)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to get customer balance", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, balanceDTO{Name: name, Balance: balance})
}

type adjustBalanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *CustomerHandler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var req adjustBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	balance, err := h.customers.AdjustBalance(r.Context(), name, req.Amount)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to adjust balance", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, balanceDTO{Name: name, Balance: balance})
}
