package dto

import (
	"time"

	"github.com/fincore-app/fincore/internal/core/domain"
)

// CreateAccountRequest is the body for POST /accounts.
type CreateAccountRequest struct {
	Code            string  `json:"code" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	AccountType     string  `json:"account_type" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID *string `json:"parent_id,omitempty"`
	Description     string  `json:"description,omitempty"`
}

// UpdateAccountRequest is the body for PUT /accounts/{id}. Only the
// fields present are applied. Code is immutable; the account type may
// only change while no posted line references the account.
type UpdateAccountRequest struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	ParentAccountID *string `json:"parent_id,omitempty"` // empty string clears the parent
	Status          *string `json:"status,omitempty" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	AccountType     *string `json:"account_type,omitempty" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
}

// ListAccountsParams are the query parameters for GET /accounts.
type ListAccountsParams struct {
	ListParams
	AccountType *string `form:"type" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Status      *string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	ParentID    *string `form:"parent_id"`
}

// AccountResponse is the wire shape of an account.
type AccountResponse struct {
	AccountID       string    `json:"account_id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	AccountType     string    `json:"account_type"`
	ParentAccountID string    `json:"parent_id,omitempty"`
	Description     string    `json:"description,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	LastUpdatedAt   time.Time `json:"last_updated_at"`
}

// ListAccountsResponse is the paginated account collection.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PerPage  int               `json:"per_page"`
}

// ToAccountResponse converts a domain account to its wire shape.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Code:            a.Code,
		Name:            a.Name,
		AccountType:     string(a.AccountType),
		ParentAccountID: a.ParentAccountID,
		Description:     a.Description,
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
		LastUpdatedAt:   a.LastUpdatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
