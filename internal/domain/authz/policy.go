// Package authz define la política de autorización explícita: un valor que se
// inyecta en los casos de uso y se consulta en cada llamada, en lugar de un
// mapa global de roles.
package authz

// Operation identifica una operación autorizable del núcleo transaccional.
type Operation string

const (
	OpCreateSale     Operation = "create_sale"
	OpCreatePurchase Operation = "create_purchase"
	OpAdjustStock    Operation = "adjust_stock"
	OpCancelOrder    Operation = "cancel_order"
	OpRebuildStock   Operation = "rebuild_stock"
	OpManageCatalog  Operation = "manage_catalog"
	OpManageExpenses Operation = "manage_expenses"
	OpViewReports    Operation = "view_reports"
)

// Actor es la identidad autenticada que ejecuta una operación.
// El ID queda registrado en cada movimiento del ledger para auditoría.
type Actor struct {
	ID   string
	Role string
}

// Policy mapea rol -> operaciones permitidas.
type Policy struct {
	allowed map[string]map[Operation]bool
}

// NewPolicy construye una política vacía.
func NewPolicy() *Policy {
	return &Policy{allowed: make(map[string]map[Operation]bool)}
}

// Grant permite las operaciones dadas al rol.
func (p *Policy) Grant(role string, ops ...Operation) *Policy {
	if p.allowed[role] == nil {
		p.allowed[role] = make(map[Operation]bool)
	}
	for _, op := range ops {
		p.allowed[role][op] = true
	}
	return p
}

// Allows indica si el rol puede ejecutar la operación.
func (p *Policy) Allows(role string, op Operation) bool {
	return p.allowed[role][op]
}

// DefaultPolicy devuelve la política estándar de la aplicación:
// admin todo; manager todo menos gestión de usuarios; accountant gastos y
// reportes; employee ventas y consulta de reportes.
func DefaultPolicy() *Policy {
	p := NewPolicy()
	p.Grant("admin",
		OpCreateSale, OpCreatePurchase, OpAdjustStock, OpCancelOrder,
		OpRebuildStock, OpManageCatalog, OpManageExpenses, OpViewReports)
	p.Grant("manager",
		OpCreateSale, OpCreatePurchase, OpAdjustStock, OpCancelOrder,
		OpRebuildStock, OpManageCatalog, OpManageExpenses, OpViewReports)
	p.Grant("accountant", OpManageExpenses, OpViewReports)
	p.Grant("employee", OpCreateSale, OpViewReports)
	return p
}
