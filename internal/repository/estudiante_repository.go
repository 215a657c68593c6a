package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/controledu/controledu-api/internal/models"
)

// EstudianteRepository manages persistence for student accounts.
type EstudianteRepository struct {
	db *sqlx.DB
}

// NewEstudianteRepository constructs an EstudianteRepository.
func NewEstudianteRepository(db *sqlx.DB) *EstudianteRepository {
	return &EstudianteRepository{db: db}
}

// List returns students matching the provided filters ordered by name.
func (r *EstudianteRepository) List(ctx context.Context, filter models.EstudianteFilter) ([]models.Estudiante, error) {
	base := "SELECT id, nombres, apellidos, grado, seccion, fecha_nacimiento, usuario, password FROM estudiante"
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Grado != "" {
		where = append(where, fmt.Sprintf("grado = $%d", len(args)+1))
		args = append(args, filter.Grado)
	}
	if filter.Seccion != "" {
		where = append(where, fmt.Sprintf("seccion = $%d", len(args)+1))
		args = append(args, filter.Seccion)
	}
	if filter.Nombre != "" {
		where = append(where, fmt.Sprintf("(LOWER(nombres) LIKE $%d OR LOWER(apellidos) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Nombre)+"%")
	}
	query := fmt.Sprintf("%s WHERE %s ORDER BY apellidos, nombres", base, strings.Join(where, " AND "))

	var estudiantes []models.Estudiante
	if err := r.db.SelectContext(ctx, &estudiantes, query, args...); err != nil {
		return nil, fmt.Errorf("list estudiantes: %w", err)
	}
	return estudiantes, nil
}

// FindByID fetches a student by ID.
func (r *EstudianteRepository) FindByID(ctx context.Context, id int64) (*models.Estudiante, error) {
	const query = `SELECT id, nombres, apellidos, grado, seccion, fecha_nacimiento, usuario, password FROM estudiante WHERE id = $1`
	var estudiante models.Estudiante
	if err := r.db.GetContext(ctx, &estudiante, query, id); err != nil {
		return nil, err
	}
	return &estudiante, nil
}

// FindByUsuario fetches a student by login name.
func (r *EstudianteRepository) FindByUsuario(ctx context.Context, usuario string) (*models.Estudiante, error) {
	const query = `SELECT id, nombres, apellidos, grado, seccion, fecha_nacimiento, usuario, password FROM estudiante WHERE usuario = $1`
	var estudiante models.Estudiante
	if err := r.db.GetContext(ctx, &estudiante, query, usuario); err != nil {
		return nil, err
	}
	return &estudiante, nil
}

// ExistsByUsuario checks login-name uniqueness, optionally excluding an ID.
func (r *EstudianteRepository) ExistsByUsuario(ctx context.Context, usuario string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM estudiante WHERE usuario = $1"
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
		return false, fmt.Errorf("check estudiante usuario: %w", err)
	}
	return true, nil
}

// Create inserts a new student and populates the generated ID.
func (r *EstudianteRepository) Create(ctx context.Context, estudiante *models.Estudiante) error {
	const query = `INSERT INTO estudiante (nombres, apellidos, grado, seccion, fecha_nacimiento, usuario, password)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		estudiante.Nombres, estudiante.Apellidos, estudiante.Grado, estudiante.Seccion,
		estudiante.FechaNacimiento, estudiante.Usuario, estudiante.PasswordHash,
	).Scan(&estudiante.ID); err != nil {
		return fmt.Errorf("create estudiante: %w", err)
	}
	return nil
}

// Update modifies an existing student.
func (r *EstudianteRepository) Update(ctx context.Context, estudiante *models.Estudiante) error {
	const query = `UPDATE estudiante SET nombres = :nombres, apellidos = :apellidos, grado = :grado, seccion = :seccion,
        fecha_nacimiento = :fecha_nacimiento, usuario = :usuario WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, estudiante); err != nil {
		return fmt.Errorf("update estudiante: %w", err)
	}
	return nil
}

// UpdatePassword overwrites the stored password hash.
func (r *EstudianteRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE estudiante SET password = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, passwordHash); err != nil {
		return fmt.Errorf("update estudiante password: %w", err)
	}
	return nil
}

// Delete removes a student account.
func (r *EstudianteRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM estudiante WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete estudiante: %w", err)
	}
	return nil
}

// Count returns the total number of students.
func (r *EstudianteRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM estudiante"); err != nil {
		return 0, fmt.Errorf("count estudiantes: %w", err)
	}
	return total, nil
}

// DistinctGrados lists the grades present in the roster.
func (r *EstudianteRepository) DistinctGrados(ctx context.Context) ([]string, error) {
	var grados []string
	if err := r.db.SelectContext(ctx, &grados, "SELECT DISTINCT grado FROM estudiante ORDER BY grado"); err != nil {
		return nil, fmt.Errorf("distinct grados: %w", err)
	}
	return grados, nil
}

// DistinctSecciones lists the sections present in the roster.
func (r *EstudianteRepository) DistinctSecciones(ctx context.Context) ([]string, error) {
	var secciones []string
	if err := r.db.SelectContext(ctx, &secciones, "SELECT DISTINCT seccion FROM estudiante ORDER BY seccion"); err != nil {
		return nil, fmt.Errorf("distinct secciones: %w", err)
	}
	return secciones, nil
}

// ConMasIncidencias lists students ordered by incident count descending.
func (r *EstudianteRepository) ConMasIncidencias(ctx context.Context, limit int) ([]models.EstudianteIncidencias, error) {
	if limit <= 0 {
		limit = 10
	}
	query := fmt.Sprintf(`SELECT e.id, e.nombres, e.apellidos, e.grado, e.seccion, COUNT(r.id_registro) AS total
        FROM estudiante e
        JOIN registroconductas r ON r.id_estudiante = e.id
        GROUP BY e.id, e.nombres, e.apellidos, e.grado, e.seccion
        ORDER BY total DESC LIMIT %d`, limit)
	var rows []models.EstudianteIncidencias
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("estudiantes con mas incidencias: %w", err)
	}
	return rows, nil
}

// SinIncidencias lists students with zero incident records.
func (r *EstudianteRepository) SinIncidencias(ctx context.Context) ([]models.Estudiante, error) {
	const query = `SELECT id, nombres, apellidos, grado, seccion, fecha_nacimiento, usuario, password
        FROM estudiante
        WHERE id NOT IN (SELECT id_estudiante FROM registroconductas)
        ORDER BY apellidos, nombres`
	var estudiantes []models.Estudiante
	if err := r.db.SelectContext(ctx, &estudiantes, query); err != nil {
		return nil, fmt.Errorf("estudiantes sin incidencias: %w", err)
	}
	return estudiantes, nil
}
