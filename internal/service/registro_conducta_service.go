package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/controledu/controledu-api/internal/dto"
	"github.com/controledu/controledu-api/internal/models"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
	"github.com/controledu/controledu-api/pkg/storage"
)

type registroRepository interface {
	List(ctx context.Context, filter models.RegistroFilter) ([]models.RegistroConductaDetalle, error)
	FindByID(ctx context.Context, id int64) (*models.RegistroConductaDetalle, error)
	Create(ctx context.Context, registro *models.RegistroConducta) error
	MarcarLeido(ctx context.Context, id int64, fechaLectura time.Time) (bool, error)
	CambiarEstado(ctx context.Context, id int64, estado string) error
	SetEvidenciaURL(ctx context.Context, id int64, url *string) error
	Delete(ctx context.Context, id int64) error
	CountNoLeidosByEstudiante(ctx context.Context, estudianteID int64) (int64, error)
}

type registroEstudianteRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Estudiante, error)
}

type registroDocenteRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Docente, error)
}

type registroConductaRepository interface {
	FindByID(ctx context.Context, id int64) (*models.ConductaDetalle, error)
}

// EvidenceConfig bounds evidence uploads.
type EvidenceConfig struct {
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
}

// RegistroConductaService orchestrates incident records: registration
// with foreign-key resolution, read receipts, state transitions and
// evidence attachments.
type RegistroConductaService struct {
	repo        registroRepository
	estudiantes registroEstudianteRepository
	docentes    registroDocenteRepository
	conductas   registroConductaRepository
	storage     *storage.LocalStorage
	signer      *storage.SignedURLSigner
	evidence    EvidenceConfig
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewRegistroConductaService constructs a RegistroConductaService.
func NewRegistroConductaService(repo registroRepository, estudiantes registroEstudianteRepository, docentes registroDocenteRepository, conductas registroConductaRepository, store *storage.LocalStorage, signer *storage.SignedURLSigner, evidence EvidenceConfig, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *RegistroConductaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &RegistroConductaService{
		repo:        repo,
		estudiantes: estudiantes,
		docentes:    docentes,
		conductas:   conductas,
		storage:     store,
		signer:      signer,
		evidence:    evidence,
		cache:       cache,
		validator:   validate,
		logger:      logger,
	}
}

// Registrar files an incident. The three referenced entities must
// exist before anything is written; the behavior rule must be active.
// Defaults: estado ACTIVO, leido false, fecha now.
func (s *RegistroConductaService) Registrar(ctx context.Context, docenteID int64, req dto.RegistrarIncidenteRequest) (*models.RegistroConductaDetalle, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de registro invalidos")
	}

	if _, err := s.estudiantes.FindByID(ctx, req.EstudianteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "el estudiante indicado no existe")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo verificar el estudiante")
	}

	// The reporting docente comes from the session, but the account may
	// have been deleted while the session was alive.
	if _, err := s.docentes.FindByID(ctx, docenteID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "el docente indicado no existe")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo verificar el docente")
	}

	conducta, err := s.conductas.FindByID(ctx, req.ConductaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "la conducta indicada no existe")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo verificar la conducta")
	}
	if !conducta.Activo {
		return nil, appErrors.Clone(appErrors.ErrValidation, "la conducta esta desactivada")
	}

	fecha := time.Now().UTC()
	if req.Fecha != nil {
		fecha = *req.Fecha
	}

	registro := &models.RegistroConducta{
		EstudianteID:    req.EstudianteID,
		DocenteID:       docenteID,
		ConductaID:      req.ConductaID,
		FechaRegistro:   fecha,
		AccionesTomadas: req.AccionesTomadas,
		Comentarios:     req.Comentarios,
		Leido:           false,
		Estado:          models.EstadoActivo,
	}
	if err := s.repo.Create(ctx, registro); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo registrar el incidente")
	}

	s.invalidate(ctx)
	s.logger.Info("incidente registrado",
		zap.Int64("registro_id", registro.ID),
		zap.Int64("estudiante_id", req.EstudianteID),
		zap.Int64("docente_id", docenteID))
	return s.Get(ctx, registro.ID)
}

// List returns incident records matching the filter.
func (s *RegistroConductaService) List(ctx context.Context, filter models.RegistroFilter) ([]models.RegistroConductaDetalle, error) {
	registros, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron listar los registros")
	}
	return registros, nil
}

// Get fetches one incident record with its joined display fields.
func (s *RegistroConductaService) Get(ctx context.Context, id int64) (*models.RegistroConductaDetalle, error) {
	registro, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "registro no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo cargar el registro")
	}
	return registro, nil
}

// MarcarComoLeido stamps the read receipt. Repeat calls refresh the
// read timestamp, never flip the flag back.
func (s *RegistroConductaService) MarcarComoLeido(ctx context.Context, id int64) (*models.RegistroConductaDetalle, error) {
	found, err := s.repo.MarcarLeido(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo marcar el registro")
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "registro no encontrado")
	}
	s.invalidate(ctx)
	return s.Get(ctx, id)
}

// CambiarEstado transitions an incident between ACTIVO and RESUELTO.
// Only the estado column changes.
func (s *RegistroConductaService) CambiarEstado(ctx context.Context, id int64, req dto.CambiarEstadoRequest) (*models.RegistroConductaDetalle, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "estado invalido")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.CambiarEstado(ctx, id, req.Estado); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo cambiar el estado")
	}
	s.invalidate(ctx)
	return s.Get(ctx, id)
}

// Delete removes an incident record and its stored evidence, if any.
func (s *RegistroConductaService) Delete(ctx context.Context, id int64) error {
	registro, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo eliminar el registro")
	}
	if registro.EvidenciaURL != nil && s.storage != nil {
		if err := s.storage.Delete(*registro.EvidenciaURL); err != nil {
			s.logger.Warn("failed to delete evidence file", zap.String("path", *registro.EvidenciaURL), zap.Error(err))
		}
	}
	s.invalidate(ctx)
	return nil
}

// NoLeidos returns the unread incident count of a student.
func (s *RegistroConductaService) NoLeidos(ctx context.Context, estudianteID int64) (int64, error) {
	total, err := s.repo.CountNoLeidosByEstudiante(ctx, estudianteID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudieron contar los registros")
	}
	return total, nil
}

// AdjuntarEvidencia stores an uploaded file and records its relative
// path on the incident. A previous attachment is replaced and removed
// from disk.
func (s *RegistroConductaService) AdjuntarEvidencia(ctx context.Context, id int64, filename, contentType string, size int64, r io.Reader) (*dto.EvidenciaResponse, error) {
	if s.storage == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "almacenamiento de evidencias no configurado")
	}
	registro, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.evidence.MaxFileSizeBytes > 0 && size > s.evidence.MaxFileSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, "el archivo supera el tamaño permitido")
	}
	if len(s.evidence.AllowedMIMEs) > 0 && !contains(s.evidence.AllowedMIMEs, contentType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "tipo de archivo no permitido")
	}

	reader := r
	if s.evidence.MaxFileSizeBytes > 0 {
		reader = io.LimitReader(r, s.evidence.MaxFileSizeBytes)
	}
	relPath := fmt.Sprintf("registros/%d/%s%s", id, uuid.NewString(), filepath.Ext(filename))
	if _, err := s.storage.SaveStream(relPath, reader); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo guardar la evidencia")
	}

	previous := registro.EvidenciaURL
	if err := s.repo.SetEvidenciaURL(ctx, id, &relPath); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo asociar la evidencia")
	}
	if previous != nil {
		if err := s.storage.Delete(*previous); err != nil {
			s.logger.Warn("failed to delete replaced evidence", zap.String("path", *previous), zap.Error(err))
		}
	}

	resp := &dto.EvidenciaResponse{RegistroID: id, URL: relPath}
	if s.signer != nil {
		token, _, err := s.signer.Generate(strconv.FormatInt(id, 10), relPath)
		if err == nil {
			resp.DescargaURL = "/api/registro-conductas/evidencia/" + token
		}
	}
	return resp, nil
}

// AbrirEvidencia validates a signed token and opens the file behind it.
func (s *RegistroConductaService) AbrirEvidencia(ctx context.Context, token string) (io.ReadCloser, string, error) {
	if s.signer == nil || s.storage == nil {
		return nil, "", appErrors.Clone(appErrors.ErrInternal, "almacenamiento de evidencias no configurado")
	}
	recordID, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "enlace de evidencia invalido o vencido")
	}

	id, err := strconv.ParseInt(recordID, 10, 64)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "enlace de evidencia invalido o vencido")
	}
	registro, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if registro.EvidenciaURL == nil || *registro.EvidenciaURL != relPath {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "la evidencia ya no esta disponible")
	}

	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo abrir la evidencia")
	}
	return file, filepath.Base(relPath), nil
}

// EnlaceEvidencia issues a fresh signed download link for an incident's
// stored evidence.
func (s *RegistroConductaService) EnlaceEvidencia(ctx context.Context, id int64) (*dto.EvidenciaResponse, error) {
	registro, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if registro.EvidenciaURL == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "el registro no tiene evidencia")
	}
	resp := &dto.EvidenciaResponse{RegistroID: id, URL: *registro.EvidenciaURL}
	if s.signer != nil {
		token, _, err := s.signer.Generate(strconv.FormatInt(id, 10), *registro.EvidenciaURL)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "no se pudo firmar el enlace")
		}
		resp.DescargaURL = "/api/registro-conductas/evidencia/" + token
	}
	return resp, nil
}

func (s *RegistroConductaService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "dashboard:*"); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
	if err := s.cache.Invalidate(ctx, "reportes:*"); err != nil {
		s.logger.Warn("failed to invalidate report cache", zap.Error(err))
	}
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
