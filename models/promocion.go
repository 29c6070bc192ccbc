package models

import "time"

// TipoPromocion represents the kind of discount a promocion provides.
type TipoPromocion string

const (
	PromocionPorcentaje TipoPromocion = "PORCENTAJE"
	PromocionCantidad   TipoPromocion = "CANTIDAD"
	PromocionCombo      TipoPromocion = "COMBO"
)

// PromocionDetalle binds a promocion to one articulo and the quantity
// required before the promotional price applies.
type PromocionDetalle struct {
	ArticuloID int64 `json:"articuloId"`
	Cantidad   int   `json:"cantidad"`
}

// Promocion is a branch-scoped discount rule with a date/time validity
// window. Read-only from this layer's perspective.
type Promocion struct {
	ID                  int64              `json:"id"`
	Denominacion        string             `json:"denominacion"`
	Tipo                TipoPromocion      `json:"tipoPromocion"`
	PrecioPromocional   float64            `json:"precioPromocional"`
	DescuentoPorcentaje float64            `json:"descuentoPorcentaje"`
	DetallesPromocion   []PromocionDetalle `json:"detallesPromocion"`
	EstadoActivo        bool               `json:"estadoActivo"`
	SucursalIDs         []int64            `json:"sucursalIds"`
	FechaDesde          string             `json:"fechaDesde"` // yyyy-MM-dd
	FechaHasta          string             `json:"fechaHasta"`
	HoraDesde           string             `json:"horaDesde"` // HH:mm:ss
	HoraHasta           string             `json:"horaHasta"`
	Imagenes            []Imagen           `json:"imagenes"`
}

// AppliesToSucursal reports whether the promocion is scoped to the given
// branch. An empty scope list means the promocion applies everywhere.
func (p *Promocion) AppliesToSucursal(sucursalID int64) bool {
	if len(p.SucursalIDs) == 0 {
		return true
	}
	for _, id := range p.SucursalIDs {
		if id == sucursalID {
			return true
		}
	}
	return false
}

// VigenteEn reports whether t falls inside the promocion's date and time
// window. Unparseable or missing bounds are treated as open.
func (p *Promocion) VigenteEn(t time.Time) bool {
	if d, err := time.ParseInLocation("2006-01-02", p.FechaDesde, t.Location()); err == nil {
		if t.Before(d) {
			return false
		}
	}
	if d, err := time.ParseInLocation("2006-01-02", p.FechaHasta, t.Location()); err == nil {
		if t.After(d.Add(24*time.Hour - time.Nanosecond)) {
			return false
		}
	}
	hhmmss := t.Format("15:04:05")
	if p.HoraDesde != "" && p.HoraHasta != "" && p.HoraDesde > p.HoraHasta {
		// Window wraps past midnight, e.g. 20:00:00 to 02:00:00.
		return hhmmss >= p.HoraDesde || hhmmss <= p.HoraHasta
	}
	if p.HoraDesde != "" && hhmmss < p.HoraDesde {
		return false
	}
	if p.HoraHasta != "" && hhmmss > p.HoraHasta {
		return false
	}
	return true
}

// DetalleFor returns the applicability entry referencing the given articulo,
// or nil when the promocion does not cover it.
func (p *Promocion) DetalleFor(articuloID int64) *PromocionDetalle {
	for i := range p.DetallesPromocion {
		if p.DetallesPromocion[i].ArticuloID == articuloID {
			return &p.DetallesPromocion[i]
		}
	}
	return nil
}
