package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/controledu/controledu-api/internal/models"
)

// DirectorRepository manages persistence for director accounts.
type DirectorRepository struct {
	db *sqlx.DB
}

// NewDirectorRepository constructs a DirectorRepository.
func NewDirectorRepository(db *sqlx.DB) *DirectorRepository {
	return &DirectorRepository{db: db}
}

// FindByUsuario fetches a director by login name.
func (r *DirectorRepository) FindByUsuario(ctx context.Context, usuario string) (*models.Director, error) {
	const query = `SELECT id, nombres, apellidos, usuario, password FROM director WHERE usuario = $1`
	var director models.Director
	if err := r.db.GetContext(ctx, &director, query, usuario); err != nil {
		return nil, err
	}
	return &director, nil
}

// FindByID fetches a director by ID.
func (r *DirectorRepository) FindByID(ctx context.Context, id int64) (*models.Director, error) {
	const query = `SELECT id, nombres, apellidos, usuario, password FROM director WHERE id = $1`
	var director models.Director
	if err := r.db.GetContext(ctx, &director, query, id); err != nil {
		return nil, err
	}
	return &director, nil
}

// UpdateProfile changes the director's display fields.
func (r *DirectorRepository) UpdateProfile(ctx context.Context, id int64, nombres, apellidos string) error {
	const query = `UPDATE director SET nombres = $2, apellidos = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, nombres, apellidos); err != nil {
		return fmt.Errorf("update director profile: %w", err)
	}
	return nil
}

// UpdatePassword overwrites the stored password hash.
func (r *DirectorRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE director SET password = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, passwordHash); err != nil {
		return fmt.Errorf("update director password: %w", err)
	}
	return nil
}
