package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ventaspro/internal/application/dto"
	"github.com/tu-usuario/ventaspro/internal/domain"
	"github.com/tu-usuario/ventaspro/internal/domain/authz"
	"github.com/tu-usuario/ventaspro/internal/domain/entity"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
)

// ExpenseUseCase registro y consulta de gastos operativos.
type ExpenseUseCase struct {
	expenseRepo repository.ExpenseRepository
	policy      *authz.Policy
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(expenseRepo repository.ExpenseRepository, policy *authz.Policy) *ExpenseUseCase {
	return &ExpenseUseCase{expenseRepo: expenseRepo, policy: policy}
}

// Create registra un gasto. El monto debe ser positivo.
func (uc *ExpenseUseCase) Create(actor authz.Actor, req dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	if !uc.policy.Allows(actor.Role, authz.OpManageExpenses) {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(req.Description) == "" || !req.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	expenseDate := time.Now()
	if req.ExpenseDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ExpenseDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		expenseDate = parsed
	}

	now := time.Now()
	expense := &entity.Expense{
		ID:          uuid.New().String(),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		ExpenseDate: expenseDate,
		Category:    req.Category,
		Notes:       req.Notes,
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// GetByID retorna el gasto.
func (uc *ExpenseUseCase) GetByID(actor authz.Actor, id string) (*dto.ExpenseResponse, error) {
	if !uc.policy.Allows(actor.Role, authz.OpManageExpenses) {
		return nil, domain.ErrForbidden
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	expense, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	return toExpenseResponse(expense), nil
}

// List lista gastos por rango de fechas, paginados.
func (uc *ExpenseUseCase) List(actor authz.Actor, from, to *time.Time, limit, offset int) ([]dto.ExpenseResponse, error) {
	if !uc.policy.Allows(actor.Role, authz.OpManageExpenses) {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	expenses, err := uc.expenseRepo.List(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, *toExpenseResponse(e))
	}
	return out, nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate,
		Category:    e.Category,
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
	}
}
