package dto

import "time"

// CreateDocenteRequest registers a teacher account.
type CreateDocenteRequest struct {
	Nombres   string `json:"nombres" validate:"required"`
	Apellidos string `json:"apellidos" validate:"required"`
	Materia   string `json:"materia" validate:"required"`
	Usuario   string `json:"usuario" validate:"required,min=4"`
	Password  string `json:"password" validate:"required,min=8"`
}

// UpdateDocenteRequest edits a teacher account. Password changes go
// through ResetPasswordRequest instead.
type UpdateDocenteRequest struct {
	Nombres   string `json:"nombres" validate:"required"`
	Apellidos string `json:"apellidos" validate:"required"`
	Materia   string `json:"materia" validate:"required"`
	Usuario   string `json:"usuario" validate:"required,min=4"`
}

// CreateEstudianteRequest registers a student account.
type CreateEstudianteRequest struct {
	Nombres         string    `json:"nombres" validate:"required"`
	Apellidos       string    `json:"apellidos" validate:"required"`
	Grado           string    `json:"grado" validate:"required"`
	Seccion         string    `json:"seccion" validate:"required"`
	FechaNacimiento time.Time `json:"fecha_nacimiento" validate:"required"`
	Usuario         string    `json:"usuario" validate:"required,min=4"`
	Password        string    `json:"password" validate:"required,min=8"`
}

// UpdateEstudianteRequest edits a student account.
type UpdateEstudianteRequest struct {
	Nombres         string    `json:"nombres" validate:"required"`
	Apellidos       string    `json:"apellidos" validate:"required"`
	Grado           string    `json:"grado" validate:"required"`
	Seccion         string    `json:"seccion" validate:"required"`
	FechaNacimiento time.Time `json:"fecha_nacimiento" validate:"required"`
	Usuario         string    `json:"usuario" validate:"required,min=4"`
}

// ResetPasswordRequest sets a new password for a managed account.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// ConductaRequest creates or edits a behavior rule.
type ConductaRequest struct {
	Nombre      string `json:"nombre" validate:"required"`
	Descripcion string `json:"descripcion" validate:"required"`
	GravedadID  int64  `json:"id_gravedad" validate:"required,gt=0"`
}

// ConductaActivoRequest toggles rule visibility.
type ConductaActivoRequest struct {
	Activo *bool `json:"activo" validate:"required"`
}
