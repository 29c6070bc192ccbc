package services_test

import (
	"testing"
	"time"

	"storefront-service/models"
	"storefront-service/services"

	"github.com/stretchr/testify/assert"
)

func articulo(id int64, precio float64) models.Articulo {
	return models.Articulo{ID: id, Denominacion: "articulo", PrecioVenta: precio}
}

func line(articuloID int64, precio float64, cantidad int) models.EnrichedCartItem {
	return models.EnrichedCartItem{
		ID:       articuloID,
		Articulo: articulo(articuloID, precio),
		Cantidad: cantidad,
	}
}

func cantidadPromo(articuloID int64, reqQty int, precioPromocional float64) models.Promocion {
	return models.Promocion{
		ID:                1,
		Tipo:              models.PromocionCantidad,
		PrecioPromocional: precioPromocional,
		DetallesPromocion: []models.PromocionDetalle{{ArticuloID: articuloID, Cantidad: reqQty}},
		EstadoActivo:      true,
	}
}

func TestComputeTotalesQuantityPromo(t *testing.T) {
	// Three burgers at $10, promo "2 for $15": one bundle applies.
	items := []models.EnrichedCartItem{line(1, 10, 3)}
	promos := []models.Promocion{cantidadPromo(1, 2, 15)}

	tot := services.ComputeTotales(items, promos, "", "")

	assert.InDelta(t, 30.0, tot.SubtotalBruto, 0.001)
	assert.InDelta(t, 5.0, tot.DescuentoPromociones, 0.001)
	assert.InDelta(t, 0.0, tot.DescuentoAdicional, 0.001)
	assert.InDelta(t, 25.0, tot.Total, 0.001)
	assert.Equal(t, 3, tot.TotalItems)
	// The final total always equals gross subtotal minus total discount.
	assert.InDelta(t, tot.SubtotalBruto-tot.Descuento, tot.Total, 0.001)
}

func TestComputeTotalesTakeawayCashDiscount(t *testing.T) {
	items := []models.EnrichedCartItem{line(1, 10, 3)}
	promos := []models.Promocion{cantidadPromo(1, 2, 15)}

	tot := services.ComputeTotales(items, promos, models.EnvioTakeaway, models.PagoEfectivo)

	// 10% of the promo-adjusted subtotal (25.00), not of the gross subtotal.
	assert.InDelta(t, 2.5, tot.DescuentoAdicional, 0.001)
	assert.InDelta(t, 7.5, tot.Descuento, 0.001)
	assert.InDelta(t, 22.5, tot.Total, 0.001)
}

func TestComputeTotalesNoExtraDiscountForOtherCombinations(t *testing.T) {
	items := []models.EnrichedCartItem{line(1, 10, 1)}

	for _, tc := range []struct {
		envio models.TipoEnvio
		pago  models.FormaPago
	}{
		{models.EnvioDelivery, models.PagoMercadoPago},
		{models.EnvioTakeaway, models.PagoMercadoPago},
		{models.EnvioDelivery, models.PagoEfectivo},
		{"", ""},
	} {
		tot := services.ComputeTotales(items, nil, tc.envio, tc.pago)
		assert.Zerof(t, tot.DescuentoAdicional, "envio=%s pago=%s", tc.envio, tc.pago)
		assert.InDelta(t, 10.0, tot.Total, 0.001)
	}
}

func TestComputeTotalesBelowRequiredQuantity(t *testing.T) {
	items := []models.EnrichedCartItem{line(1, 10, 1)}
	promos := []models.Promocion{cantidadPromo(1, 2, 15)}

	tot := services.ComputeTotales(items, promos, "", "")

	assert.Zero(t, tot.DescuentoPromociones)
	assert.InDelta(t, 10.0, tot.Total, 0.001)
}

func TestComputeTotalesMultipleBundles(t *testing.T) {
	// Five units, threshold two: exactly two bundles discount, the fifth
	// unit pays full price.
	items := []models.EnrichedCartItem{line(1, 10, 5)}
	promos := []models.Promocion{cantidadPromo(1, 2, 15)}

	tot := services.ComputeTotales(items, promos, "", "")

	assert.InDelta(t, 10.0, tot.DescuentoPromociones, 0.001)
	assert.InDelta(t, 40.0, tot.Total, 0.001)
}

func TestComputeTotalesEmptyCart(t *testing.T) {
	tot := services.ComputeTotales(nil, []models.Promocion{cantidadPromo(1, 2, 15)}, models.EnvioTakeaway, models.PagoEfectivo)
	assert.Equal(t, models.Totales{}, tot)
}

func TestComputeTotalesDiscountNeverNegative(t *testing.T) {
	// Promotional price above the bundle's regular price must not surcharge.
	items := []models.EnrichedCartItem{line(1, 10, 2)}
	promos := []models.Promocion{cantidadPromo(1, 2, 50)}

	tot := services.ComputeTotales(items, promos, "", "")

	assert.Zero(t, tot.DescuentoPromociones)
	assert.InDelta(t, 20.0, tot.Total, 0.001)
}

func TestComputeTotalesPorcentajeMatchesButDoesNotDiscount(t *testing.T) {
	items := []models.EnrichedCartItem{line(1, 100, 1)}
	promos := []models.Promocion{{
		ID:                  1,
		Tipo:                models.PromocionPorcentaje,
		DescuentoPorcentaje: 20,
		DetallesPromocion:   []models.PromocionDetalle{{ArticuloID: 1, Cantidad: 1}},
		EstadoActivo:        true,
	}}

	tot := services.ComputeTotales(items, promos, "", "")

	assert.Zero(t, tot.DescuentoPromociones)
	assert.InDelta(t, 100.0, tot.Total, 0.001)
}

func TestComputeTotalesFirstMatchingPromoWins(t *testing.T) {
	items := []models.EnrichedCartItem{line(1, 10, 2)}
	first := cantidadPromo(1, 2, 15)
	second := cantidadPromo(1, 2, 5) // deeper discount, listed later
	second.ID = 2

	tot := services.ComputeTotales(items, []models.Promocion{first, second}, "", "")

	assert.InDelta(t, 5.0, tot.DescuentoPromociones, 0.001)
}

func TestComputeTotalesComboBehavesLikeCantidad(t *testing.T) {
	promo := cantidadPromo(1, 2, 15)
	promo.Tipo = models.PromocionCombo
	items := []models.EnrichedCartItem{line(1, 10, 2)}

	tot := services.ComputeTotales(items, []models.Promocion{promo}, "", "")

	assert.InDelta(t, 5.0, tot.DescuentoPromociones, 0.001)
}

func TestFilterPromociones(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	active := cantidadPromo(1, 2, 15)
	active.SucursalIDs = []int64{7}

	inactive := cantidadPromo(2, 2, 15)
	inactive.EstadoActivo = false

	otherBranch := cantidadPromo(3, 2, 15)
	otherBranch.SucursalIDs = []int64{99}

	expired := cantidadPromo(4, 2, 15)
	expired.FechaHasta = "2026-01-01"

	outsideHours := cantidadPromo(5, 2, 15)
	outsideHours.HoraDesde = "20:00:00"
	outsideHours.HoraHasta = "23:00:00"

	everywhere := cantidadPromo(6, 2, 15) // empty sucursal scope

	got := services.FilterPromociones(
		[]models.Promocion{active, inactive, otherBranch, expired, outsideHours, everywhere},
		7, now)

	assert.Len(t, got, 2)
	assert.Equal(t, active.DetallesPromocion, got[0].DetallesPromocion)
	assert.Equal(t, everywhere.DetallesPromocion, got[1].DetallesPromocion)
}
