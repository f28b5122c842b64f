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

// CustomerUseCase CRUD de clientes.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
	policy       *authz.Policy
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository, policy *authz.Policy) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo, policy: policy}
}

// Create da de alta un cliente.
func (uc *CustomerUseCase) Create(actor authz.Actor, req dto.PartyRequest) (*dto.PartyResponse, error) {
	if !uc.policy.Allows(actor.Role, authz.OpManageCatalog) {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(req.Name),
		ContactPerson: req.ContactPerson,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		TaxID:         req.TaxID,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customerToPartyResponse(customer), nil
}

// GetByID retorna el cliente.
func (uc *CustomerUseCase) GetByID(id string) (*dto.PartyResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customerToPartyResponse(customer), nil
}

// Update edita los datos del cliente.
func (uc *CustomerUseCase) Update(actor authz.Actor, id string, req dto.PartyRequest) (*dto.PartyResponse, error) {
	if !uc.policy.Allows(actor.Role, authz.OpManageCatalog) {
		return nil, domain.ErrForbidden
	}
	if id == "" || strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	customer.Name = strings.TrimSpace(req.Name)
	customer.ContactPerson = req.ContactPerson
	customer.Address = req.Address
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.TaxID = req.TaxID
	customer.UpdatedAt = time.Now()
	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customerToPartyResponse(customer), nil
}

// List lista clientes paginados.
func (uc *CustomerUseCase) List(limit, offset int) ([]dto.PartyResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	customers, err := uc.customerRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartyResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, *customerToPartyResponse(c))
	}
	return out, nil
}

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
	policy       *authz.Policy
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository, policy *authz.Policy) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo, policy: policy}
}

// Create da de alta un proveedor.
func (uc *SupplierUseCase) Create(actor authz.Actor, req dto.PartyRequest) (*dto.PartyResponse, error) {
	if !uc.policy.Allows(actor.Role, authz.OpManageCatalog) {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(req.Name),
		ContactPerson: req.ContactPerson,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		TaxID:         req.TaxID,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return supplierToPartyResponse(supplier), nil
}

// GetByID retorna el proveedor.
func (uc *SupplierUseCase) GetByID(id string) (*dto.PartyResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return supplierToPartyResponse(supplier), nil
}

// Update edita los datos del proveedor.
func (uc *SupplierUseCase) Update(actor authz.Actor, id string, req dto.PartyRequest) (*dto.PartyResponse, error) {
	if !uc.policy.Allows(actor.Role, authz.OpManageCatalog) {
		return nil, domain.ErrForbidden
	}
	if id == "" || strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	supplier.Name = strings.TrimSpace(req.Name)
	supplier.ContactPerson = req.ContactPerson
	supplier.Address = req.Address
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	supplier.TaxID = req.TaxID
	supplier.UpdatedAt = time.Now()
	if err := uc.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return supplierToPartyResponse(supplier), nil
}

// List lista proveedores paginados.
func (uc *SupplierUseCase) List(limit, offset int) ([]dto.PartyResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	suppliers, err := uc.supplierRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartyResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, *supplierToPartyResponse(s))
	}
	return out, nil
}

func customerToPartyResponse(c *entity.Customer) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:            c.ID,
		Name:          c.Name,
		ContactPerson: c.ContactPerson,
		Address:       c.Address,
		Phone:         c.Phone,
		Email:         c.Email,
		TaxID:         c.TaxID,
		Active:        c.Active,
		CreatedAt:     c.CreatedAt,
	}
}

func supplierToPartyResponse(s *entity.Supplier) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Address:       s.Address,
		Phone:         s.Phone,
		Email:         s.Email,
		TaxID:         s.TaxID,
		Active:        s.Active,
		CreatedAt:     s.CreatedAt,
	}
}
