package models

import "time"

// Role names derived from the concrete principal type.
const (
	RolDirector   = "DIRECTOR"
	RolDocente    = "DOCENTE"
	RolEstudiante = "ESTUDIANTE"
)

// Principal is the authenticated user held in the server-side session.
// The three account types share no table, only this shape.
type Principal interface {
	PrincipalID() int64
	Rol() string
	Username() string
	DisplayName() string
}

// Session is the server-side state created at login and destroyed at
// logout or password change. It lives in Redis keyed by Token with an
// idle TTL refreshed on every authenticated request.
type Session struct {
	Token     string    `json:"token"`
	Rol       string    `json:"rol"`
	UserID    int64     `json:"user_id"`
	Usuario   string    `json:"usuario"`
	Nombre    string    `json:"nombre"`
	CreatedAt time.Time `json:"created_at"`
}

// PrincipalInfo describes the authenticated user in responses.
type PrincipalInfo struct {
	ID      int64  `json:"id"`
	Usuario string `json:"usuario"`
	Nombre  string `json:"nombre"`
	Rol     string `json:"rol"`
}

// InfoFor flattens any principal into its response shape.
func InfoFor(p Principal) PrincipalInfo {
	return PrincipalInfo{
		ID:      p.PrincipalID(),
		Usuario: p.Username(),
		Nombre:  p.DisplayName(),
		Rol:     p.Rol(),
	}
}
