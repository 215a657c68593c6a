package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/controledu/controledu-api/internal/middleware"
	"github.com/controledu/controledu-api/internal/models"
	"github.com/controledu/controledu-api/internal/service"
	"github.com/controledu/controledu-api/pkg/config"
)

// Handlers bundles the route handlers for registration.
type Handlers struct {
	Auth          *AuthHandler
	Director      *DirectorHandler
	Gestion       *GestionHandler
	Docente       *DocenteHandler
	Estudiante    *EstudianteHandler
	Conductas     *ConductaHandler
	Observaciones *ObservacionHandler
	Registros     *RegistroConductaHandler
	Metrics       *MetricsHandler
}

// RegisterRoutes mounts the full HTTP surface on the engine. The role
// prefixes mirror the three account types; /api serves the same
// services to bearer-token clients.
func RegisterRoutes(r *gin.Engine, h Handlers, sessions *service.SessionService, metrics *service.MetricsService, cfg *config.Config) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireSession := middleware.Session(sessions, cfg.Session.CookieName)

	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/access-denied", h.Auth.AccessDenied)
		auth.GET("/profile", requireSession, h.Auth.Profile)
		auth.PUT("/profile", requireSession, h.Auth.UpdateProfile)
		auth.PUT("/profile/password", requireSession, h.Auth.ChangePassword)
	}

	director := r.Group("/director", requireSession, middleware.RequireRol(models.RolDirector))
	{
		director.GET("/dashboard", h.Director.Dashboard)
		director.GET("/metricas", h.Metrics.Snapshot)
		director.GET("/perfil", h.Auth.Profile)

		director.GET("/incidentes", h.Director.Incidentes)
		director.GET("/incidentes/:id", h.Director.Incidente)
		director.PATCH("/incidentes/:id/marcar-leido", h.Director.MarcarIncidenteLeido)
		director.PATCH("/incidentes/:id/resolver", h.Director.ResolverIncidente)

		director.GET("/observaciones", h.Director.Observaciones)
		director.GET("/observaciones/:id", h.Director.Observacion)
		director.PATCH("/observaciones/:id/marcar-leida", h.Director.MarcarObservacionLeida)
		director.DELETE("/observaciones/:id", h.Director.EliminarObservacion)

		director.GET("/estudiantes", h.Director.Estudiantes)
		director.GET("/docentes", h.Director.Docentes)
		director.GET("/conductas", h.Director.Conductas)

		director.GET("/reportes", h.Director.Reportes)
		director.GET("/reportes/export", h.Director.ExportarReportes)

		gestion := director.Group("/gestion")
		{
			gestion.POST("/docentes", h.Gestion.CrearDocente)
			gestion.PUT("/docentes/:id", h.Gestion.ActualizarDocente)
			gestion.PUT("/docentes/:id/password", h.Gestion.ResetPasswordDocente)
			gestion.DELETE("/docentes/:id", h.Gestion.EliminarDocente)

			gestion.POST("/estudiantes", h.Gestion.CrearEstudiante)
			gestion.PUT("/estudiantes/:id", h.Gestion.ActualizarEstudiante)
			gestion.PUT("/estudiantes/:id/password", h.Gestion.ResetPasswordEstudiante)
			gestion.DELETE("/estudiantes/:id", h.Gestion.EliminarEstudiante)

			gestion.GET("/gravedades", h.Gestion.Gravedades)
			gestion.POST("/conductas", h.Gestion.CrearConducta)
			gestion.PUT("/conductas/:id", h.Gestion.ActualizarConducta)
			gestion.PATCH("/conductas/:id/activar", h.Gestion.ActivarConducta)
			gestion.PATCH("/conductas/:id/desactivar", h.Gestion.DesactivarConducta)
			gestion.DELETE("/conductas/:id", h.Gestion.EliminarConducta)
		}
	}

	docente := r.Group("/docente", requireSession, middleware.RequireRol(models.RolDocente))
	{
		docente.GET("/dashboard", h.Docente.Dashboard)
		docente.GET("/estudiantes", h.Docente.Estudiantes)
		docente.GET("/conductas", h.Docente.Conductas)
		docente.POST("/registrar-falta", h.Docente.RegistrarFalta)
		docente.POST("/registrar-observacion", h.Docente.RegistrarObservacion)
		docente.GET("/historial", h.Docente.Historial)
		docente.GET("/perfil", h.Auth.Profile)
	}

	estudiante := r.Group("/estudiante", requireSession, middleware.RequireRol(models.RolEstudiante))
	{
		estudiante.GET("/dashboard", h.Estudiante.Dashboard)
		estudiante.GET("/historial", h.Estudiante.Historial)
		estudiante.GET("/conductas", h.Estudiante.Conductas)
		estudiante.GET("/observaciones", h.Estudiante.Observaciones)
		estudiante.GET("/perfil", h.Auth.Profile)
	}

	api := r.Group(cfg.APIPrefix, requireSession)
	{
		conductas := api.Group("/conductas")
		{
			conductas.GET("", h.Conductas.List)
			conductas.GET("/activas", h.Conductas.Activas)
			conductas.GET("/mas-utilizadas", h.Conductas.MasUtilizadas)
			conductas.GET("/no-utilizadas", h.Conductas.NoUtilizadas)
			conductas.GET("/gravedad/:id", h.Conductas.PorGravedad)
			conductas.GET("/:id", h.Conductas.Get)

			soloDirector := middleware.RequireRol(models.RolDirector)
			conductas.POST("", soloDirector, h.Conductas.Create)
			conductas.PUT("/:id", soloDirector, h.Conductas.Update)
			conductas.DELETE("/:id", soloDirector, h.Conductas.Delete)
		}

		personal := middleware.RequireRol(models.RolDirector, models.RolDocente)

		observaciones := api.Group("/observaciones")
		{
			observaciones.GET("", personal, h.Observaciones.List)
			observaciones.GET("/fecha", personal, h.Observaciones.PorFecha)
			observaciones.GET("/rango-fechas", personal, h.Observaciones.PorRangoFechas)
			observaciones.GET("/estudiante/:id", personal, h.Observaciones.PorEstudiante)
			observaciones.GET("/docente/:id", personal, h.Observaciones.PorDocente)
			observaciones.GET("/:id", personal, h.Observaciones.Get)
			observaciones.POST("", middleware.RequireRol(models.RolDocente), h.Observaciones.Create)
			observaciones.PATCH("/:id/marcar-leida", h.Observaciones.MarcarLeida)
			observaciones.DELETE("/:id", middleware.RequireRol(models.RolDirector), h.Observaciones.Delete)
		}

		registros := api.Group("/registro-conductas")
		{
			registros.GET("", personal, h.Registros.List)
			registros.GET("/fecha", personal, h.Registros.PorFecha)
			registros.GET("/rango-fechas", personal, h.Registros.PorRangoFechas)
			registros.GET("/estudiante/:id", personal, h.Registros.PorEstudiante)
			registros.GET("/docente/:id", personal, h.Registros.PorDocente)
			registros.GET("/conducta/:id", personal, h.Registros.PorConducta)
			registros.GET("/evidencia/:token", h.Registros.DescargarEvidencia)
			registros.GET("/:id", personal, h.Registros.Get)
			registros.POST("", middleware.RequireRol(models.RolDocente), h.Registros.Create)
			registros.PATCH("/:id/marcar-leido", h.Registros.MarcarLeido)
			registros.PATCH("/:id/estado", middleware.RequireRol(models.RolDirector), h.Registros.CambiarEstado)
			registros.POST("/:id/evidencia", personal, h.Registros.SubirEvidencia)
			registros.GET("/:id/evidencia", personal, h.Registros.EnlaceEvidencia)
			registros.DELETE("/:id", middleware.RequireRol(models.RolDirector), h.Registros.Delete)
		}
	}
}
