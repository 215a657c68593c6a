package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/controledu/controledu-api/internal/models"
)

const conductaDetalleSelect = `SELECT c.id_conducta, c.nombre_conducta, c.descripcion, c.id_gravedad, c.activo,
        g.nombre_gravedad AS gravedad_nombre, g.puntos AS gravedad_puntos
        FROM conducta c
        JOIN tipogravedad g ON g.id_gravedad = c.id_gravedad`

// ConductaRepository manages persistence for behavior rules.
type ConductaRepository struct {
	db *sqlx.DB
}

// NewConductaRepository constructs a ConductaRepository.
func NewConductaRepository(db *sqlx.DB) *ConductaRepository {
	return &ConductaRepository{db: db}
}

// List returns behavior rules with their severity, optionally only
// active ones.
func (r *ConductaRepository) List(ctx context.Context, soloActivas bool) ([]models.ConductaDetalle, error) {
	query := conductaDetalleSelect
	if soloActivas {
		query += " WHERE c.activo = TRUE"
	}
	query += " ORDER BY c.nombre_conducta"
	var conductas []models.ConductaDetalle
	if err := r.db.SelectContext(ctx, &conductas, query); err != nil {
		return nil, fmt.Errorf("list conductas: %w", err)
	}
	return conductas, nil
}

// FindByID fetches a behavior rule with its severity.
func (r *ConductaRepository) FindByID(ctx context.Context, id int64) (*models.ConductaDetalle, error) {
	query := conductaDetalleSelect + " WHERE c.id_conducta = $1"
	var conducta models.ConductaDetalle
	if err := r.db.GetContext(ctx, &conducta, query, id); err != nil {
		return nil, err
	}
	return &conducta, nil
}

// FindByGravedad lists behavior rules bound to a severity level.
func (r *ConductaRepository) FindByGravedad(ctx context.Context, gravedadID int64) ([]models.ConductaDetalle, error) {
	query := conductaDetalleSelect + " WHERE c.id_gravedad = $1 ORDER BY c.nombre_conducta"
	var conductas []models.ConductaDetalle
	if err := r.db.SelectContext(ctx, &conductas, query, gravedadID); err != nil {
		return nil, fmt.Errorf("list conductas por gravedad: %w", err)
	}
	return conductas, nil
}

// Search lists behavior rules by case-insensitive name fragment.
func (r *ConductaRepository) Search(ctx context.Context, nombre string) ([]models.ConductaDetalle, error) {
	query := conductaDetalleSelect + " WHERE LOWER(c.nombre_conducta) LIKE $1 ORDER BY c.nombre_conducta"
	var conductas []models.ConductaDetalle
	if err := r.db.SelectContext(ctx, &conductas, query, "%"+strings.ToLower(nombre)+"%"); err != nil {
		return nil, fmt.Errorf("search conductas: %w", err)
	}
	return conductas, nil
}

// ExistsByNombre checks rule-name uniqueness, optionally excluding an ID.
func (r *ConductaRepository) ExistsByNombre(ctx context.Context, nombre string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM conducta WHERE LOWER(nombre_conducta) = LOWER($1)"
	args := []interface{}{nombre}
	if excludeID > 0 {
		query += " AND id_conducta <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check conducta nombre: %w", err)
	}
	return true, nil
}

// Create inserts a new behavior rule and populates the generated ID.
func (r *ConductaRepository) Create(ctx context.Context, conducta *models.Conducta) error {
	const query = `INSERT INTO conducta (nombre_conducta, descripcion, id_gravedad, activo)
        VALUES ($1, $2, $3, $4) RETURNING id_conducta`
	if err := r.db.QueryRowxContext(ctx, query,
		conducta.Nombre, conducta.Descripcion, conducta.GravedadID, conducta.Activo,
	).Scan(&conducta.ID); err != nil {
		return fmt.Errorf("create conducta: %w", err)
	}
	return nil
}

// Update modifies an existing behavior rule.
func (r *ConductaRepository) Update(ctx context.Context, conducta *models.Conducta) error {
	const query = `UPDATE conducta SET nombre_conducta = :nombre_conducta, descripcion = :descripcion, id_gravedad = :id_gravedad WHERE id_conducta = :id_conducta`
	if _, err := r.db.NamedExecContext(ctx, query, conducta); err != nil {
		return fmt.Errorf("update conducta: %w", err)
	}
	return nil
}

// SetActivo toggles rule visibility without deleting history.
func (r *ConductaRepository) SetActivo(ctx context.Context, id int64, activo bool) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE conducta SET activo = $2 WHERE id_conducta = $1", id, activo); err != nil {
		return fmt.Errorf("set conducta activo: %w", err)
	}
	return nil
}

// Delete removes a behavior rule. Callers must verify the rule has no
// incident records first; the FK restricts the delete otherwise.
func (r *ConductaRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM conducta WHERE id_conducta = $1", id); err != nil {
		return fmt.Errorf("delete conducta: %w", err)
	}
	return nil
}

// CountRegistros returns how many incident records reference the rule.
func (r *ConductaRepository) CountRegistros(ctx context.Context, id int64) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM registroconductas WHERE id_conducta = $1", id); err != nil {
		return 0, fmt.Errorf("count registros de conducta: %w", err)
	}
	return total, nil
}

// MasUtilizadas lists active rules ordered by usage count descending.
func (r *ConductaRepository) MasUtilizadas(ctx context.Context) ([]models.ConductaUso, error) {
	const query = `SELECT c.id_conducta, c.nombre_conducta, g.nombre_gravedad AS gravedad_nombre, COUNT(r.id_registro) AS total_usos
        FROM conducta c
        JOIN tipogravedad g ON g.id_gravedad = c.id_gravedad
        LEFT JOIN registroconductas r ON r.id_conducta = c.id_conducta
        WHERE c.activo = TRUE
        GROUP BY c.id_conducta, c.nombre_conducta, g.nombre_gravedad
        ORDER BY total_usos DESC`
	var usos []models.ConductaUso
	if err := r.db.SelectContext(ctx, &usos, query); err != nil {
		return nil, fmt.Errorf("conductas mas utilizadas: %w", err)
	}
	return usos, nil
}

// NoUtilizadas lists active rules with zero incident records.
func (r *ConductaRepository) NoUtilizadas(ctx context.Context) ([]models.ConductaDetalle, error) {
	query := conductaDetalleSelect + ` WHERE c.activo = TRUE AND c.id_conducta NOT IN
        (SELECT id_conducta FROM registroconductas) ORDER BY c.nombre_conducta`
	var conductas []models.ConductaDetalle
	if err := r.db.SelectContext(ctx, &conductas, query); err != nil {
		return nil, fmt.Errorf("conductas no utilizadas: %w", err)
	}
	return conductas, nil
}

// Count returns the total number of behavior rules.
func (r *ConductaRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM conducta"); err != nil {
		return 0, fmt.Errorf("count conductas: %w", err)
	}
	return total, nil
}
