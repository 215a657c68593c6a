package models

import "time"

// Estudiante represents a student account, referenced by incident
// records and observations.
type Estudiante struct {
	ID              int64     `db:"id" json:"id"`
	Nombres         string    `db:"nombres" json:"nombres"`
	Apellidos       string    `db:"apellidos" json:"apellidos"`
	Grado           string    `db:"grado" json:"grado"`
	Seccion         string    `db:"seccion" json:"seccion"`
	FechaNacimiento time.Time `db:"fecha_nacimiento" json:"fecha_nacimiento"`
	Usuario         string    `db:"usuario" json:"usuario"`
	PasswordHash    string    `db:"password" json:"-"`
}

// PrincipalID implements Principal.
func (e *Estudiante) PrincipalID() int64 { return e.ID }

// Rol implements Principal.
func (e *Estudiante) Rol() string { return RolEstudiante }

// Username implements Principal.
func (e *Estudiante) Username() string { return e.Usuario }

// DisplayName implements Principal.
func (e *Estudiante) DisplayName() string { return e.Nombres + " " + e.Apellidos }

// EstudianteFilter captures search parameters for listing students.
type EstudianteFilter struct {
	Grado   string
	Seccion string
	Nombre  string
}

// EstudianteIncidencias pairs a student with the number of incident
// records referencing them.
type EstudianteIncidencias struct {
	ID        int64  `db:"id" json:"id"`
	Nombres   string `db:"nombres" json:"nombres"`
	Apellidos string `db:"apellidos" json:"apellidos"`
	Grado     string `db:"grado" json:"grado"`
	Seccion   string `db:"seccion" json:"seccion"`
	Total     int64  `db:"total" json:"total"`
}
