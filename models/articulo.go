package models

// Imagen is an image reference attached to an articulo or promocion.
type Imagen struct {
	ID           int64  `json:"id"`
	Denominacion string `json:"denominacion"` // public URL
}

// Articulo is a sellable catalog item as served by the backend.
type Articulo struct {
	ID           int64    `json:"id"`
	Denominacion string   `json:"denominacion"`
	PrecioVenta  float64  `json:"precioVenta"`
	Imagenes     []Imagen `json:"imagenes"`
	CategoriaID  int64    `json:"categoriaId"`
	EstadoActivo bool     `json:"estadoActivo"`
}

type Categoria struct {
	ID           int64  `json:"id"`
	Denominacion string `json:"denominacion"`
	EstadoActivo bool   `json:"estadoActivo"`
}
