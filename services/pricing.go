package services

import (
	"time"

	"storefront-service/models"
)

// FilterPromociones narrows the full promotion list to those active, scoped
// to the given sucursal and inside their validity window at now. Inactive or
// out-of-scope promotions are excluded here, never during per-item matching.
func FilterPromociones(all []models.Promocion, sucursalID int64, now time.Time) []models.Promocion {
	var out []models.Promocion
	for _, p := range all {
		if !p.EstadoActivo {
			continue
		}
		if !p.AppliesToSucursal(sucursalID) {
			continue
		}
		if !p.VigenteEn(now) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchPromocion returns the first promotion whose applicability list
// references the articulo, or nil.
func matchPromocion(promos []models.Promocion, articuloID int64) (*models.Promocion, *models.PromocionDetalle) {
	for i := range promos {
		if det := promos[i].DetalleFor(articuloID); det != nil {
			return &promos[i], det
		}
	}
	return nil, nil
}

// promocionDiscount computes the discount one enriched line contributes
// under its matched promotion. Quantities below the required quantity
// contribute nothing.
func promocionDiscount(item models.EnrichedCartItem, promo *models.Promocion, det *models.PromocionDetalle) float64 {
	switch promo.Tipo {
	case models.PromocionCantidad, models.PromocionCombo:
		if det.Cantidad <= 0 || item.Cantidad < det.Cantidad {
			return 0
		}
		k := item.Cantidad / det.Cantidad
		d := float64(k) * (float64(det.Cantidad)*item.Articulo.PrecioVenta - promo.PrecioPromocional)
		if d < 0 {
			return 0
		}
		return d
	case models.PromocionPorcentaje:
		// Matched but intentionally not applied; the formula is pending
		// product clarification.
		return 0
	}
	return 0
}

// ComputeTotales computes the amounts shown to the user: gross subtotal,
// promotional discounts, the flat extra discount for the pickup-and-cash
// combination, and the final payable total. Deterministic and
// order-independent across items.
func ComputeTotales(items []models.EnrichedCartItem, promos []models.Promocion, tipoEnvio models.TipoEnvio, formaPago models.FormaPago) models.Totales {
	var t models.Totales
	if len(items) == 0 {
		return t
	}

	for _, item := range items {
		t.SubtotalBruto += item.Articulo.PrecioVenta * float64(item.Cantidad)
		t.TotalItems += item.Cantidad

		if promo, det := matchPromocion(promos, item.Articulo.ID); promo != nil {
			t.DescuentoPromociones += promocionDiscount(item, promo, det)
		}
	}

	subtotalConPromos := t.SubtotalBruto - t.DescuentoPromociones

	if tipoEnvio == models.EnvioTakeaway && formaPago == models.PagoEfectivo {
		t.DescuentoAdicional = subtotalConPromos * 0.10
	}

	t.Descuento = t.DescuentoPromociones + t.DescuentoAdicional
	t.Total = subtotalConPromos - t.DescuentoAdicional
	return t
}
