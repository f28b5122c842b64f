package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ventaspro/internal/application/reports"
	"github.com/tu-usuario/ventaspro/internal/domain"
	"github.com/tu-usuario/ventaspro/internal/domain/authz"
	"github.com/tu-usuario/ventaspro/internal/domain/entity"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeReportRepo struct {
	salesTotals    repository.OrderTotals
	purchaseTotals repository.OrderTotals
	byCustomer     []repository.PartyBreakdownRow
	bySupplier     []repository.PartyBreakdownRow
	byDay          []repository.DailyBreakdownRow
	revenue        decimal.Decimal
	cogs           decimal.Decimal
	topItems       []repository.TopItemRow
	topLimit       int
}

var _ repository.ReportRepository = (*fakeReportRepo)(nil)

func (r *fakeReportRepo) SalesTotals(context.Context, time.Time, time.Time) (*repository.OrderTotals, error) {
	t := r.salesTotals
	return &t, nil
}

func (r *fakeReportRepo) SalesByCustomer(context.Context, time.Time, time.Time) ([]repository.PartyBreakdownRow, error) {
	return r.byCustomer, nil
}

func (r *fakeReportRepo) SalesByDay(context.Context, time.Time, time.Time) ([]repository.DailyBreakdownRow, error) {
	return r.byDay, nil
}

func (r *fakeReportRepo) PurchasesTotals(context.Context, time.Time, time.Time) (*repository.OrderTotals, error) {
	t := r.purchaseTotals
	return &t, nil
}

func (r *fakeReportRepo) PurchasesBySupplier(context.Context, time.Time, time.Time) ([]repository.PartyBreakdownRow, error) {
	return r.bySupplier, nil
}

func (r *fakeReportRepo) RevenueAndCOGS(context.Context, time.Time, time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return r.revenue, r.cogs, nil
}

func (r *fakeReportRepo) TopItems(_ context.Context, _, _ time.Time, limit int) ([]repository.TopItemRow, error) {
	r.topLimit = limit
	return r.topItems, nil
}

type fakeExpenseRepo struct{ total decimal.Decimal }

var _ repository.ExpenseRepository = (*fakeExpenseRepo)(nil)

func (r *fakeExpenseRepo) Create(*entity.Expense) error               { return nil }
func (r *fakeExpenseRepo) GetByID(string) (*entity.Expense, error)    { return nil, nil }
func (r *fakeExpenseRepo) List(*time.Time, *time.Time, int, int) ([]*entity.Expense, error) {
	return nil, nil
}
func (r *fakeExpenseRepo) TotalInRange(time.Time, time.Time) (decimal.Decimal, error) {
	return r.total, nil
}

type fakeItemList struct{ items []*entity.Item }

var _ repository.ItemRepository = (*fakeItemList)(nil)

func (r *fakeItemList) Create(*entity.Item) error                            { return nil }
func (r *fakeItemList) GetByID(string) (*entity.Item, error)                 { return nil, nil }
func (r *fakeItemList) GetByCode(string) (*entity.Item, error)               { return nil, nil }
func (r *fakeItemList) GetForUpdate(string) (*entity.Item, error)            { return nil, nil }
func (r *fakeItemList) Update(*entity.Item) error                            { return nil }
func (r *fakeItemList) UpdateStock(string, int64) error                      { return nil }
func (r *fakeItemList) UpdateCosting(string, decimal.Decimal, decimal.Decimal) error {
	return nil
}
func (r *fakeItemList) ListActive() ([]*entity.Item, error)      { return r.items, nil }
func (r *fakeItemList) List(int, int) ([]*entity.Item, error)    { return r.items, nil }
func (r *fakeItemList) Deactivate(string) error                  { return nil }

type fakeCategoryList struct{ categories []*entity.Category }

var _ repository.CategoryRepository = (*fakeCategoryList)(nil)

func (r *fakeCategoryList) Create(*entity.Category) error            { return nil }
func (r *fakeCategoryList) GetByID(string) (*entity.Category, error) { return nil, nil }
func (r *fakeCategoryList) List() ([]*entity.Category, error)        { return r.categories, nil }

type fakeMovSummary struct{ rows []repository.MovementTypeSummary }

var _ repository.MovementRepository = (*fakeMovSummary)(nil)

func (r *fakeMovSummary) Create(*entity.StockMovement) error            { return nil }
func (r *fakeMovSummary) GetByID(string) (*entity.StockMovement, error) { return nil, nil }
func (r *fakeMovSummary) List(repository.MovementFilter) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovSummary) ListByReference(string, string) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovSummary) SumByItem(string) (int64, error) { return 0, nil }
func (r *fakeMovSummary) SummaryByType(*time.Time, *time.Time) ([]repository.MovementTypeSummary, error) {
	return r.rows, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var accountant = authz.Actor{ID: "00000000-0000-0000-0000-0000000000dd", Role: "accountant"}

func int64Ptr(v int64) *int64 { return &v }

func newUC(report *fakeReportRepo, expenses *fakeExpenseRepo, items *fakeItemList, categories *fakeCategoryList) *reports.UseCase {
	if report == nil {
		report = &fakeReportRepo{}
	}
	if expenses == nil {
		expenses = &fakeExpenseRepo{}
	}
	if items == nil {
		items = &fakeItemList{}
	}
	if categories == nil {
		categories = &fakeCategoryList{}
	}
	return reports.NewUseCase(report, expenses, items, categories, &fakeMovSummary{}, authz.DefaultPolicy())
}

var (
	from = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests ProfitLoss
// ──────────────────────────────────────────────────────────────────────────────

// Utilidad bruta = ingreso − COGS; neta = bruta − gastos;
// margen = neta / ingreso × 100 redondeado a 2 decimales.
func TestProfitLoss_Aritmetica(t *testing.T) {
	report := &fakeReportRepo{
		salesTotals:    repository.OrderTotals{Count: 12, NetAmount: dec("1000")},
		purchaseTotals: repository.OrderTotals{Count: 3, NetAmount: dec("600")},
		revenue:        dec("1000"),
		cogs:           dec("400"),
	}
	uc := newUC(report, &fakeExpenseRepo{total: dec("250")}, nil, nil)

	out, err := uc.ProfitLoss(context.Background(), accountant, from, to)
	require.NoError(t, err)

	assert.True(t, dec("1000").Equal(out.Revenue.TotalSales))
	assert.Equal(t, int64(12), out.Revenue.SalesCount)
	assert.True(t, dec("400").Equal(out.Costs.CostOfGoodsSold))
	assert.True(t, dec("600").Equal(out.Costs.TotalPurchases))
	assert.True(t, dec("250").Equal(out.Costs.Expenses))
	assert.True(t, dec("600").Equal(out.Profit.GrossProfit), "1000 − 400")
	assert.True(t, dec("350").Equal(out.Profit.NetProfit), "600 − 250")
	assert.True(t, dec("35").Equal(out.Profit.ProfitMargin), "350/1000 × 100, obtuve %s", out.Profit.ProfitMargin)
}

// Sin ingresos el margen queda en cero (no hay división por cero) y la
// utilidad neta puede ser negativa.
func TestProfitLoss_SinIngresos(t *testing.T) {
	uc := newUC(&fakeReportRepo{}, &fakeExpenseRepo{total: dec("100")}, nil, nil)

	out, err := uc.ProfitLoss(context.Background(), accountant, from, to)
	require.NoError(t, err)
	assert.True(t, out.Profit.ProfitMargin.IsZero())
	assert.True(t, dec("-100").Equal(out.Profit.NetProfit))
}

// Rango invertido es entrada inválida en todos los reportes por rango.
func TestReports_RangoInvertido(t *testing.T) {
	uc := newUC(nil, nil, nil, nil)
	ctx := context.Background()

	_, err := uc.ProfitLoss(ctx, accountant, to, from)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.SalesSummary(ctx, accountant, to, from)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.PurchasesSummary(ctx, accountant, to, from)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SalesSummary / TopItems
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesSummary_Desgloses(t *testing.T) {
	report := &fakeReportRepo{
		salesTotals: repository.OrderTotals{Count: 2, TotalAmount: dec("150"), NetAmount: dec("140")},
		byCustomer: []repository.PartyBreakdownRow{
			{PartyID: "c1", PartyName: "Comercial Andina", Count: 2, NetAmount: dec("140")},
		},
		byDay: []repository.DailyBreakdownRow{
			{Day: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), Count: 2, NetAmount: dec("140")},
		},
	}
	uc := newUC(report, nil, nil, nil)

	out, err := uc.SalesSummary(context.Background(), accountant, from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Summary.Count)
	require.Len(t, out.CustomerBreakdown, 1)
	assert.Equal(t, "Comercial Andina", out.CustomerBreakdown[0].PartyName)
	require.Len(t, out.DailyBreakdown, 1)
	assert.Equal(t, "2026-01-05", out.DailyBreakdown[0].Date)
}

// El límite por defecto del ranking es 10.
func TestTopItems_LimitePorDefecto(t *testing.T) {
	report := &fakeReportRepo{
		topItems: []repository.TopItemRow{
			{ItemID: "item-a", ItemCode: "SKU-A", ItemName: "Tornillo 3mm", QuantitySold: 40, Revenue: dec("200")},
		},
	}
	uc := newUC(report, nil, nil, nil)

	out, err := uc.TopItems(context.Background(), accountant, from, to, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, report.topLimit)
	require.Len(t, out, 1)
	assert.Equal(t, "SKU-A", out[0].Code)
	assert.Equal(t, int64(40), out[0].QuantitySold)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests StockReport / LowStock / Valuation
// ──────────────────────────────────────────────────────────────────────────────

func stockItems() *fakeItemList {
	return &fakeItemList{items: []*entity.Item{
		{ID: "a", Code: "SKU-A", Name: "Normal", CategoryID: "cat-1", Active: true,
			CurrentStock: 50, MinStock: 10, Cost: dec("2")},
		{ID: "b", Code: "SKU-B", Name: "Bajo", CategoryID: "cat-1", Active: true,
			CurrentStock: 3, MinStock: 10, Cost: dec("4")},
		{ID: "c", Code: "SKU-C", Name: "Agotado", Active: true,
			CurrentStock: 0, MinStock: 5, Cost: dec("1")},
		{ID: "d", Code: "SKU-D", Name: "Exceso", CategoryID: "cat-2", Active: true,
			CurrentStock: 120, MinStock: 10, MaxStock: int64Ptr(100), Cost: dec("0.50")},
	}}
}

func TestStockReport_ResumenDeAlertas(t *testing.T) {
	uc := newUC(nil, nil, stockItems(), nil)

	out, err := uc.StockReport(accountant)
	require.NoError(t, err)

	assert.Equal(t, int64(4), out.Summary.TotalItems)
	assert.Equal(t, int64(1), out.Summary.LowStockCount)
	assert.Equal(t, int64(1), out.Summary.OutOfStockCount)
	assert.Equal(t, int64(1), out.Summary.OverstockCount)
	// 50×2 + 3×4 + 0×1 + 120×0.50 = 172
	assert.True(t, dec("172").Equal(out.Summary.TotalValue), "obtuve %s", out.Summary.TotalValue)
}

func TestLowStock_SoloAlertas(t *testing.T) {
	uc := newUC(nil, nil, stockItems(), nil)

	out, err := uc.LowStock(accountant)
	require.NoError(t, err)
	require.Len(t, out, 2, "solo bajo mínimo y agotado; el exceso no es alerta")
	assert.Equal(t, "b", out[0].ItemID)
	assert.Equal(t, "c", out[1].ItemID)
}

func TestValuation_PorCategoria(t *testing.T) {
	categories := &fakeCategoryList{categories: []*entity.Category{
		{ID: "cat-1", Name: "Ferretería"},
		{ID: "cat-2", Name: "Construcción"},
	}}
	uc := newUC(nil, nil, stockItems(), categories)

	out, err := uc.Valuation(accountant)
	require.NoError(t, err)

	assert.True(t, dec("172").Equal(out.TotalValue))
	require.Len(t, out.Categories, 3)
	assert.Equal(t, "Ferretería", out.Categories[0].CategoryName)
	assert.True(t, dec("112").Equal(out.Categories[0].TotalValue), "50×2 + 3×4")
	assert.Equal(t, "Sin categoría", out.Categories[1].CategoryName, "artículo sin categoría agrupa aparte")
	assert.Equal(t, "Construcción", out.Categories[2].CategoryName)
	assert.True(t, dec("60").Equal(out.Categories[2].TotalValue))
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización
// ──────────────────────────────────────────────────────────────────────────────

// Todos los roles estándar pueden ver reportes; un rol desconocido no.
func TestReports_Autorizacion(t *testing.T) {
	uc := newUC(nil, nil, nil, nil)
	ctx := context.Background()

	for _, role := range []string{"admin", "manager", "accountant", "employee"} {
		_, err := uc.ProfitLoss(ctx, authz.Actor{ID: "x", Role: role}, from, to)
		assert.NoError(t, err, "rol %s debe poder ver reportes", role)
	}

	_, err := uc.ProfitLoss(ctx, authz.Actor{ID: "x", Role: "desconocido"}, from, to)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.StockReport(authz.Actor{ID: "x", Role: "desconocido"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
