package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/controledu/controledu-api/internal/models"
)

// TipoGravedadRepository manages persistence for severity levels.
type TipoGravedadRepository struct {
	db *sqlx.DB
}

// NewTipoGravedadRepository constructs a TipoGravedadRepository.
func NewTipoGravedadRepository(db *sqlx.DB) *TipoGravedadRepository {
	return &TipoGravedadRepository{db: db}
}

// List returns all severity levels ordered by name.
func (r *TipoGravedadRepository) List(ctx context.Context) ([]models.TipoGravedad, error) {
	const query = `SELECT id_gravedad, nombre_gravedad, descripcion, puntos FROM tipogravedad ORDER BY nombre_gravedad`
	var gravedades []models.TipoGravedad
	if err := r.db.SelectContext(ctx, &gravedades, query); err != nil {
		return nil, fmt.Errorf("list gravedades: %w", err)
	}
	return gravedades, nil
}

// FindByID fetches a severity level by ID.
func (r *TipoGravedadRepository) FindByID(ctx context.Context, id int64) (*models.TipoGravedad, error) {
	const query = `SELECT id_gravedad, nombre_gravedad, descripcion, puntos FROM tipogravedad WHERE id_gravedad = $1`
	var gravedad models.TipoGravedad
	if err := r.db.GetContext(ctx, &gravedad, query, id); err != nil {
		return nil, err
	}
	return &gravedad, nil
}

// FindByNombre fetches a severity level by case-insensitive name.
func (r *TipoGravedadRepository) FindByNombre(ctx context.Context, nombre string) (*models.TipoGravedad, error) {
	const query = `SELECT id_gravedad, nombre_gravedad, descripcion, puntos FROM tipogravedad WHERE LOWER(nombre_gravedad) = LOWER($1)`
	var gravedad models.TipoGravedad
	if err := r.db.GetContext(ctx, &gravedad, query, nombre); err != nil {
		return nil, err
	}
	return &gravedad, nil
}

// Create inserts a new severity level and populates the generated ID.
func (r *TipoGravedadRepository) Create(ctx context.Context, gravedad *models.TipoGravedad) error {
	const query = `INSERT INTO tipogravedad (nombre_gravedad, descripcion, puntos) VALUES ($1, $2, $3) RETURNING id_gravedad`
	if err := r.db.QueryRowxContext(ctx, query, gravedad.Nombre, gravedad.Descripcion, gravedad.Puntos).Scan(&gravedad.ID); err != nil {
		return fmt.Errorf("create gravedad: %w", err)
	}
	return nil
}

// Count returns the number of severity levels.
func (r *TipoGravedadRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM tipogravedad"); err != nil {
		return 0, fmt.Errorf("count gravedades: %w", err)
	}
	return total, nil
}

// CountConductas groups behavior rules per severity level.
func (r *TipoGravedadRepository) CountConductas(ctx context.Context) ([]models.ConteoPorGravedad, error) {
	const query = `SELECT g.nombre_gravedad AS gravedad, COUNT(c.id_conducta) AS total
        FROM tipogravedad g
        LEFT JOIN conducta c ON c.id_gravedad = g.id_gravedad
        GROUP BY g.id_gravedad, g.nombre_gravedad
        ORDER BY g.nombre_gravedad`
	var conteos []models.ConteoPorGravedad
	if err := r.db.SelectContext(ctx, &conteos, query); err != nil {
		return nil, fmt.Errorf("count conductas por gravedad: %w", err)
	}
	return conteos, nil
}
