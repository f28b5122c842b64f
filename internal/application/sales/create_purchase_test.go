package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ventaspro/internal/application/dto"
	"github.com/tu-usuario/ventaspro/internal/application/sales"
	"github.com/tu-usuario/ventaspro/internal/domain"
	"github.com/tu-usuario/ventaspro/internal/domain/authz"
	"github.com/tu-usuario/ventaspro/internal/domain/entity"
)

func newPurchaseUC(store *memStore) *sales.CreatePurchaseUseCase {
	return sales.NewCreatePurchaseUseCase(
		&fakeTxRunner{store: store},
		&fakeSupplierRepo{store},
		&fakeItemRepo{store},
		authz.DefaultPolicy(),
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreatePurchase
// ──────────────────────────────────────────────────────────────────────────────

// Compra feliz: suma stock, asienta un movimiento `in` por línea al costo de
// compra y recalcula el costo promedio ponderado del artículo.
func TestCreatePurchase_SumaStockYRecalculaCosto(t *testing.T) {
	store := seedStore()
	uc := newPurchaseUC(store)

	// item-a: 100 unidades a costo 2.00; entran 100 a 4.00 → promedio 3.00.
	resp, err := uc.Execute(context.Background(), adminActor, dto.CreatePurchaseRequest{
		SupplierID: "supp-1",
		Items:      []dto.OrderLineRequest{{ItemID: "item-a", Quantity: 100, UnitPrice: dec("4.00")}},
	})
	require.NoError(t, err)

	assert.Equal(t, "PUR-000001", resp.InvoiceNumber)
	assert.Equal(t, entity.OrderStatusCompleted, resp.Status)
	assert.True(t, dec("400").Equal(resp.TotalAmount))

	item := store.items["item-a"]
	assert.Equal(t, int64(200), item.CurrentStock)
	assert.True(t, dec("3.00").Equal(item.Cost), "costo promedio esperado 3.00, obtuve %s", item.Cost)
	assert.True(t, dec("4.00").Equal(item.PurchasePrice), "el último precio de compra debe actualizarse")

	require.Len(t, store.movements, 1)
	m := store.movements[0]
	assert.Equal(t, entity.MovementTypeIn, m.Type)
	assert.Equal(t, int64(100), m.Quantity)
	assert.True(t, dec("4.00").Equal(m.UnitCost), "el movimiento se costea al precio de compra de la línea")
	assert.Equal(t, entity.ReferencePurchase, m.ReferenceType)
	assert.Equal(t, resp.ID, m.ReferenceID)
}

// Varias líneas del mismo artículo mueven la base de costeo secuencialmente.
func TestCreatePurchase_CosteoSecuencialPorLinea(t *testing.T) {
	store := seedStore()
	store.items["item-a"].CurrentStock = 0
	store.items["item-a"].Cost = dec("0")
	uc := newPurchaseUC(store)

	// Línea 1: 10 @ 10 → costo 10, stock 10.
	// Línea 2: 10 @ 20 → promedio (10*10 + 10*20)/20 = 15, stock 20.
	_, err := uc.Execute(context.Background(), adminActor, dto.CreatePurchaseRequest{
		SupplierID: "supp-1",
		Items: []dto.OrderLineRequest{
			{ItemID: "item-a", Quantity: 10, UnitPrice: dec("10.00")},
			{ItemID: "item-a", Quantity: 10, UnitPrice: dec("20.00")},
		},
	})
	require.NoError(t, err)

	item := store.items["item-a"]
	assert.Equal(t, int64(20), item.CurrentStock)
	assert.True(t, dec("15").Equal(item.Cost), "costo promedio esperado 15, obtuve %s", item.Cost)
	assert.True(t, dec("20.00").Equal(item.PurchasePrice))
	assert.Len(t, store.movements, 2)
}

// El precio unitario es obligatorio en compras: fija la base de costeo.
func TestCreatePurchase_PrecioObligatorio(t *testing.T) {
	store := seedStore()
	uc := newPurchaseUC(store)

	_, err := uc.Execute(context.Background(), adminActor, dto.CreatePurchaseRequest{
		SupplierID: "supp-1",
		Items:      []dto.OrderLineRequest{{ItemID: "item-a", Quantity: 5}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), adminActor, dto.CreatePurchaseRequest{
		SupplierID: "supp-1",
		Items:      []dto.OrderLineRequest{{ItemID: "item-a", Quantity: 5, UnitPrice: dec("-1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.movements)
}

// Proveedor inexistente o inactivo rechaza la compra.
func TestCreatePurchase_ProveedorInvalido(t *testing.T) {
	store := seedStore()
	store.suppliers["supp-2"] = &entity.Supplier{ID: "supp-2", Name: "Cerrado SA", Active: false}
	uc := newPurchaseUC(store)
	line := []dto.OrderLineRequest{{ItemID: "item-a", Quantity: 1, UnitPrice: dec("2")}}

	_, err := uc.Execute(context.Background(), adminActor, dto.CreatePurchaseRequest{SupplierID: "no-existe", Items: line})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Execute(context.Background(), adminActor, dto.CreatePurchaseRequest{SupplierID: "supp-2", Items: line})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// employee no puede comprar.
func TestCreatePurchase_EmployeeDenegado(t *testing.T) {
	store := seedStore()
	uc := newPurchaseUC(store)

	_, err := uc.Execute(context.Background(), employeeActor, dto.CreatePurchaseRequest{
		SupplierID: "supp-1",
		Items:      []dto.OrderLineRequest{{ItemID: "item-a", Quantity: 1, UnitPrice: dec("2")}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, store.movements)
}

// Los consecutivos de factura de compra avanzan de forma independiente.
func TestCreatePurchase_ConsecutivoIndependiente(t *testing.T) {
	store := seedStore()
	purchaseUC := newPurchaseUC(store)
	saleUC := newSaleUC(store)

	_, err := saleUC.Execute(context.Background(), adminActor, dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Items:      []dto.OrderLineRequest{{ItemID: "item-a", Quantity: 1}},
	})
	require.NoError(t, err)

	resp1, err := purchaseUC.Execute(context.Background(), adminActor, dto.CreatePurchaseRequest{
		SupplierID: "supp-1",
		Items:      []dto.OrderLineRequest{{ItemID: "item-a", Quantity: 1, UnitPrice: dec("2")}},
	})
	require.NoError(t, err)
	resp2, err := purchaseUC.Execute(context.Background(), adminActor, dto.CreatePurchaseRequest{
		SupplierID: "supp-1",
		Items:      []dto.OrderLineRequest{{ItemID: "item-a", Quantity: 1, UnitPrice: dec("2")}},
	})
	require.NoError(t, err)

	assert.Equal(t, "PUR-000001", resp1.InvoiceNumber)
	assert.Equal(t, "PUR-000002", resp2.InvoiceNumber)
}
