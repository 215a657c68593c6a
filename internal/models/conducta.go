package models

// Conducta is a named behavior rule bound to one severity level.
// Deactivation hides it from registration without touching historical
// incident records.
type Conducta struct {
	ID          int64  `db:"id_conducta" json:"id"`
	Nombre      string `db:"nombre_conducta" json:"nombre_conducta"`
	Descripcion string `db:"descripcion" json:"descripcion"`
	GravedadID  int64  `db:"id_gravedad" json:"id_gravedad"`
	Activo      bool   `db:"activo" json:"activo"`
}

// ConductaDetalle joins the behavior rule with its severity level.
type ConductaDetalle struct {
	Conducta
	GravedadNombre string `db:"gravedad_nombre" json:"gravedad_nombre"`
	GravedadPuntos int    `db:"gravedad_puntos" json:"gravedad_puntos"`
}

// NombreCompleto renders the rule name with its severity tag.
func (c *ConductaDetalle) NombreCompleto() string {
	return c.Nombre + " (" + c.GravedadNombre + ")"
}

// ConductaUso pairs an active behavior rule with the number of incident
// records that reference it.
type ConductaUso struct {
	ID             int64  `db:"id_conducta" json:"id"`
	Nombre         string `db:"nombre_conducta" json:"nombre_conducta"`
	GravedadNombre string `db:"gravedad_nombre" json:"gravedad_nombre"`
	TotalUsos      int64  `db:"total_usos" json:"total_usos"`
}
