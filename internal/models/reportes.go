package models

// ConteoPorGravedad is a grouped incident count per severity name.
type ConteoPorGravedad struct {
	Gravedad string `db:"gravedad" json:"gravedad"`
	Total    int64  `db:"total" json:"total"`
}

// ConteoPorGrado is a grouped incident count per student grade.
type ConteoPorGrado struct {
	Grado string `db:"grado" json:"grado"`
	Total int64  `db:"total" json:"total"`
}

// ConteoPorMes is a grouped incident count per calendar month.
type ConteoPorMes struct {
	Anio  int   `db:"anio" json:"anio"`
	Mes   int   `db:"mes" json:"mes"`
	Total int64 `db:"total" json:"total"`
}

// ConteoPorTipo is a grouped observation count per type string.
type ConteoPorTipo struct {
	Tipo  string `db:"tipo" json:"tipo"`
	Total int64  `db:"total" json:"total"`
}
