package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/controledu/controledu-api/internal/models"
)

// DocenteRepository manages persistence for teacher accounts.
type DocenteRepository struct {
	db *sqlx.DB
}

// NewDocenteRepository constructs a DocenteRepository.
func NewDocenteRepository(db *sqlx.DB) *DocenteRepository {
	return &DocenteRepository{db: db}
}

// List returns all teachers ordered by last name.
func (r *DocenteRepository) List(ctx context.Context) ([]models.Docente, error) {
	const query = `SELECT id, nombres, apellidos, materia, usuario, password FROM docente ORDER BY apellidos, nombres`
	var docentes []models.Docente
	if err := r.db.SelectContext(ctx, &docentes, query); err != nil {
		return nil, fmt.Errorf("list docentes: %w", err)
	}
	return docentes, nil
}

// FindByID fetches a teacher by ID.
func (r *DocenteRepository) FindByID(ctx context.Context, id int64) (*models.Docente, error) {
	const query = `SELECT id, nombres, apellidos, materia, usuario, password FROM docente WHERE id = $1`
	var docente models.Docente
	if err := r.db.GetContext(ctx, &docente, query, id); err != nil {
		return nil, err
	}
	return &docente, nil
}

// FindByUsuario fetches a teacher by login name.
func (r *DocenteRepository) FindByUsuario(ctx context.Context, usuario string) (*models.Docente, error) {
	const query = `SELECT id, nombres, apellidos, materia, usuario, password FROM docente WHERE usuario = $1`
	var docente models.Docente
	if err := r.db.GetContext(ctx, &docente, query, usuario); err != nil {
		return nil, err
	}
	return &docente, nil
}

// ExistsByUsuario checks login-name uniqueness, optionally excluding an ID.
func (r *DocenteRepository) ExistsByUsuario(ctx context.Context, usuario string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM docente WHERE usuario = $1"
	args := []interface{}{usuario}
	if excludeID > 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check docente usuario: %w", err)
	}
	return true, nil
}

// Create inserts a new teacher and populates the generated ID.
func (r *DocenteRepository) Create(ctx context.Context, docente *models.Docente) error {
	const query = `INSERT INTO docente (nombres, apellidos, materia, usuario, password)
        VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		docente.Nombres, docente.Apellidos, docente.Materia, docente.Usuario, docente.PasswordHash,
	).Scan(&docente.ID); err != nil {
		return fmt.Errorf("create docente: %w", err)
	}
	return nil
}

// Update modifies an existing teacher.
func (r *DocenteRepository) Update(ctx context.Context, docente *models.Docente) error {
	const query = `UPDATE docente SET nombres = :nombres, apellidos = :apellidos, materia = :materia, usuario = :usuario WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, docente); err != nil {
		return fmt.Errorf("update docente: %w", err)
	}
	return nil
}

// UpdatePassword overwrites the stored password hash.
func (r *DocenteRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE docente SET password = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, passwordHash); err != nil {
		return fmt.Errorf("update docente password: %w", err)
	}
	return nil
}

// Delete removes a teacher account.
func (r *DocenteRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM docente WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete docente: %w", err)
	}
	return nil
}

// Count returns the total number of teachers.
func (r *DocenteRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM docente"); err != nil {
		return 0, fmt.Errorf("count docentes: %w", err)
	}
	return total, nil
}
