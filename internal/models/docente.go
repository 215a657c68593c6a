package models

// Docente represents a teacher account.
type Docente struct {
	ID           int64  `db:"id" json:"id"`
	Nombres      string `db:"nombres" json:"nombres"`
	Apellidos    string `db:"apellidos" json:"apellidos"`
	Materia      string `db:"materia" json:"materia"`
	Usuario      string `db:"usuario" json:"usuario"`
	PasswordHash string `db:"password" json:"-"`
}

// PrincipalID implements Principal.
func (d *Docente) PrincipalID() int64 { return d.ID }

// Rol implements Principal.
func (d *Docente) Rol() string { return RolDocente }

// Username implements Principal.
func (d *Docente) Username() string { return d.Usuario }

// DisplayName implements Principal.
func (d *Docente) DisplayName() string { return d.Nombres + " " + d.Apellidos }
