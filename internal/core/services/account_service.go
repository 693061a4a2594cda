package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fincore-app/fincore/internal/apperrors"
	"github.com/fincore-app/fincore/internal/core/domain"
	portsrepo "github.com/fincore-app/fincore/internal/core/ports/repositories"
	portssvc "github.com/fincore-app/fincore/internal/core/ports/services"
	"github.com/fincore-app/fincore/internal/dto"
)

// accountService is the chart-of-accounts source of truth.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
	usageRepo   portsrepo.AccountUsageReader
}

// NewAccountService creates a new account service. usageRepo answers
// whether journal entries reference an account.
func NewAccountService(accountRepo portsrepo.AccountRepository, usageRepo portsrepo.AccountUsageReader) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		usageRepo:   usageRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates and persists a new account, created Active.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	accountType := domain.AccountType(req.AccountType)
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	// Codes are unique across the whole chart.
	if _, err := s.accountRepo.FindAccountByCode(ctx, code); err == nil {
		return nil, fmt.Errorf("%w: account code %q already exists", apperrors.ErrConflict, code)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code uniqueness", slog.String("code", code))
		return nil, err
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, *req.ParentAccountID)
			}
			return nil, err
		}
		if parent.AccountType != accountType {
			return nil, fmt.Errorf("%w: parent account %s has type %s, expected %s", apperrors.ErrValidation, parent.AccountID, parent.AccountType, accountType)
		}
		parentID = parent.AccountID
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            code,
		Name:            name,
		AccountType:     accountType,
		ParentAccountID: parentID,
		Description:     req.Description,
		Status:          domain.AccountActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", code))
	return &account, nil
}

// GetAccountByID retrieves a specific account by its ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByCode retrieves an account by its unique code.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code", slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccounts retrieves accounts matching the filter, ordered by code
// ascending. Pagination is applied in memory; charts of accounts are
// small enough that the repository returns the full filtered set.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	params.Normalize()

	filter := portsrepo.AccountFilter{}
	if params.AccountType != nil {
		t := domain.AccountType(*params.AccountType)
		filter.AccountType = &t
	}
	if params.Status != nil {
		st := domain.AccountStatus(*params.Status)
		filter.Status = &st
	}
	filter.ParentID = params.ParentID

	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}

	total := int64(len(accounts))
	start := (params.Page - 1) * params.PerPage
	if start > len(accounts) {
		start = len(accounts)
	}
	end := start + params.PerPage
	if end > len(accounts) {
		end = len(accounts)
	}

	return &dto.ListAccountsResponse{
		Accounts: dto.ToAccountResponses(accounts[start:end]),
		Total:    total,
		Page:     params.Page,
		PerPage:  params.PerPage,
	}, nil
}

// UpdateAccount applies a partial update. Code is immutable; the account
// type may only change while no posted line references the account.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
		}
		account.Name = name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.Status != nil {
		account.Status = domain.AccountStatus(*req.Status)
		updated = true
	}
	if req.AccountType != nil {
		newType := domain.AccountType(*req.AccountType)
		if !newType.IsValid() {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		if newType != account.AccountType {
			posted, err := s.usageRepo.HasPostedLinesForAccount(ctx, accountID)
			if err != nil {
				return nil, err
			}
			if posted {
				return nil, fmt.Errorf("%w: account %s has posted lines, its type cannot change", apperrors.ErrConflict, accountID)
			}
			account.AccountType = newType
			updated = true
		}
	}
	if req.ParentAccountID != nil {
		newParentID := *req.ParentAccountID
		if err := s.validateParentChange(ctx, account, newParentID); err != nil {
			return nil, err
		}
		account.ParentAccountID = newParentID
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

// validateParentChange rejects self-parenting, type mismatches and cycle
// creation. The cycle check walks the candidate parent's ancestor chain;
// the account must not appear in it.
func (s *accountService) validateParentChange(ctx context.Context, account *domain.Account, newParentID string) error {
	if newParentID == "" {
		return nil // detaching to root is always legal
	}
	if newParentID == account.AccountID {
		return fmt.Errorf("%w: account cannot be its own parent", apperrors.ErrValidation)
	}

	parent, err := s.accountRepo.FindAccountByID(ctx, newParentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, newParentID)
		}
		return err
	}
	if parent.AccountType != account.AccountType {
		return fmt.Errorf("%w: parent account %s has type %s, expected %s", apperrors.ErrValidation, parent.AccountID, parent.AccountType, account.AccountType)
	}

	ancestors, err := s.ancestorIDs(ctx, parent)
	if err != nil {
		return err
	}
	for _, id := range ancestors {
		if id == account.AccountID {
			return fmt.Errorf("%w: parent change would create a cycle in the account tree", apperrors.ErrValidation)
		}
	}
	return nil
}

// ancestorIDs returns the account's ID followed by every ancestor ID up
// to the root.
func (s *accountService) ancestorIDs(ctx context.Context, account *domain.Account) ([]string, error) {
	ids := []string{account.AccountID}
	seen := map[string]struct{}{account.AccountID: {}}
	current := account
	for current.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, current.ParentAccountID)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[parent.AccountID]; dup {
			// A stored cycle would loop forever; treat it as corruption.
			return nil, fmt.Errorf("%w: cycle detected in stored account tree at %s", apperrors.ErrStorage, parent.AccountID)
		}
		seen[parent.AccountID] = struct{}{}
		ids = append(ids, parent.AccountID)
		current = parent
	}
	return ids, nil
}

// Descendants returns the account's ID and the IDs of every account
// below it, breadth-first.
func (s *accountService) Descendants(ctx context.Context, accountID string) ([]string, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	ids := []string{accountID}
	queue := []string{accountID}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		children, err := s.accountRepo.ListChildAccounts(ctx, next)
		if err != nil {
			return nil, err
		}
		sort.Slice(children, func(i, j int) bool { return children[i].Code < children[j].Code })
		for _, child := range children {
			ids = append(ids, child.AccountID)
			queue = append(queue, child.AccountID)
		}
	}
	return ids, nil
}

// DeactivateAccount marks an account inactive. New entries may no longer
// reference it; posted entries and balance queries are unaffected.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.Status == domain.AccountInactive {
		return nil
	}
	account.Status = domain.AccountInactive
	account.LastUpdatedAt = time.Now().UTC()
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

// DeleteAccount removes an account that no journal entry and no child
// account references.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	referenced, err := s.usageRepo.HasLinesForAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: account %s is referenced by journal entries", apperrors.ErrConflict, accountID)
	}

	children, err := s.accountRepo.ListChildAccounts(ctx, accountID)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return fmt.Errorf("%w: account %s has child accounts", apperrors.ErrConflict, accountID)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}
