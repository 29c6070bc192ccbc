package models

// Sucursal is a physical store location scoping catalog and order queries.
type Sucursal struct {
	ID               int64   `json:"id"`
	Nombre           string  `json:"nombre"`
	HorarioApertura  string  `json:"horarioApertura"`
	HorarioCierre    string  `json:"horarioCierre"`
	CategoriaIDs     []int64 `json:"categoriaIds"`
	EstadoActivo     bool    `json:"estadoActivo"`
	CasaMatrizActiva bool    `json:"casaMatriz"`
}
