package models

// Director represents a school director account. Directors own the
// management and reporting surfaces but are never referenced by
// incident records.
type Director struct {
	ID           int64  `db:"id" json:"id"`
	Nombres      string `db:"nombres" json:"nombres"`
	Apellidos    string `db:"apellidos" json:"apellidos"`
	Usuario      string `db:"usuario" json:"usuario"`
	PasswordHash string `db:"password" json:"-"`
}

// PrincipalID implements Principal.
func (d *Director) PrincipalID() int64 { return d.ID }

// Rol implements Principal.
func (d *Director) Rol() string { return RolDirector }

// Username implements Principal.
func (d *Director) Username() string { return d.Usuario }

// DisplayName implements Principal.
func (d *Director) DisplayName() string { return d.Nombres + " " + d.Apellidos }
