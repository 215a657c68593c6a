package models

import "strings"

// Canonical severity names seeded at startup.
const (
	GravedadLeve     = "leve"
	GravedadGrave    = "grave"
	GravedadMuyGrave = "muy grave"
)

// TipoGravedad is a severity level with an associated point value.
type TipoGravedad struct {
	ID          int64  `db:"id_gravedad" json:"id"`
	Nombre      string `db:"nombre_gravedad" json:"nombre_gravedad"`
	Descripcion string `db:"descripcion" json:"descripcion"`
	Puntos      int    `db:"puntos" json:"puntos"`
}

// EsLeve reports whether this is the lowest severity level.
func (t *TipoGravedad) EsLeve() bool { return strings.EqualFold(t.Nombre, GravedadLeve) }

// EsGrave reports whether this is the middle severity level.
func (t *TipoGravedad) EsGrave() bool { return strings.EqualFold(t.Nombre, GravedadGrave) }

// EsMuyGrave reports whether this is the highest severity level.
func (t *TipoGravedad) EsMuyGrave() bool { return strings.EqualFold(t.Nombre, GravedadMuyGrave) }
