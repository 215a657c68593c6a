package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ControlEdu API",
        "description": "Role-based school behavior tracking: incidents, observations and reports",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Session login for director, docente and estudiante"},
        {"name": "Director", "description": "Supervision dashboard and reports"},
        {"name": "Gestion", "description": "Account and behavior catalog administration"},
        {"name": "Docente", "description": "Incident and observation registration"},
        {"name": "Estudiante", "description": "Student self-service views"},
        {"name": "Conductas", "description": "Behavior catalog REST API"},
        {"name": "Observaciones", "description": "Observation REST API"},
        {"name": "RegistroConductas", "description": "Incident record REST API"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Iniciar sesion",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Credenciales invalidas"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Cerrar sesion",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/auth/profile": {
            "get": {
                "tags": ["Auth"],
                "summary": "Perfil del usuario autenticado",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Auth"],
                "summary": "Editar perfil (solo director)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Prohibido"}
                }
            }
        },
        "/auth/profile/password": {
            "put": {
                "tags": ["Auth"],
                "summary": "Cambiar contraseña",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangePasswordRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Contraseña actual incorrecta"}
                }
            }
        },
        "/director/dashboard": {
            "get": {
                "tags": ["Director"],
                "summary": "Panel del director",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/director/incidentes": {
            "get": {
                "tags": ["Director"],
                "summary": "Listar incidentes",
                "parameters": [
                    {"name": "id_estudiante", "in": "query", "type": "integer"},
                    {"name": "id_docente", "in": "query", "type": "integer"},
                    {"name": "estado", "in": "query", "type": "string"},
                    {"name": "leido", "in": "query", "type": "boolean"},
                    {"name": "fecha_inicio", "in": "query", "type": "string"},
                    {"name": "fecha_fin", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/director/incidentes/{id}/resolver": {
            "patch": {
                "tags": ["Director"],
                "summary": "Resolver incidente",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "No encontrado"}
                }
            }
        },
        "/director/reportes": {
            "get": {
                "tags": ["Director"],
                "summary": "Reporte general de convivencia",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/director/reportes/export": {
            "get": {
                "tags": ["Director"],
                "summary": "Exportar reporte (csv o pdf)",
                "parameters": [
                    {"name": "formato", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Archivo adjunto"},
                    "400": {"description": "Formato no soportado"}
                }
            }
        },
        "/director/gestion/docentes": {
            "post": {
                "tags": ["Gestion"],
                "summary": "Registrar docente",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDocenteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Creado"},
                    "409": {"description": "Usuario en uso"}
                }
            }
        },
        "/director/gestion/estudiantes": {
            "post": {
                "tags": ["Gestion"],
                "summary": "Registrar estudiante",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEstudianteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Creado"},
                    "409": {"description": "Usuario en uso"}
                }
            }
        },
        "/director/gestion/conductas": {
            "post": {
                "tags": ["Gestion"],
                "summary": "Crear conducta",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConductaRequest"}}
                ],
                "responses": {
                    "201": {"description": "Creado"},
                    "409": {"description": "Nombre duplicado"}
                }
            }
        },
        "/docente/registrar-falta": {
            "post": {
                "tags": ["Docente"],
                "summary": "Registrar incidente",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegistrarIncidenteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Creado"},
                    "400": {"description": "Datos invalidos"}
                }
            }
        },
        "/docente/registrar-observacion": {
            "post": {
                "tags": ["Docente"],
                "summary": "Registrar observacion",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegistrarObservacionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Creado"},
                    "400": {"description": "Datos invalidos"}
                }
            }
        },
        "/estudiante/conductas": {
            "get": {
                "tags": ["Estudiante"],
                "summary": "Mis conductas por gravedad",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/conductas": {
            "get": {
                "tags": ["Conductas"],
                "summary": "Listar conductas",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Conductas"],
                "summary": "Crear conducta",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConductaRequest"}}
                ],
                "responses": {
                    "201": {"description": "Creado"}
                }
            }
        },
        "/api/registro-conductas/{id}/marcar-leido": {
            "patch": {
                "tags": ["RegistroConductas"],
                "summary": "Marcar registro como leido",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "No encontrado"}
                }
            }
        },
        "/api/registro-conductas/{id}/evidencia": {
            "post": {
                "tags": ["RegistroConductas"],
                "summary": "Adjuntar evidencia",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "archivo", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Archivo invalido"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "usuario": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["usuario", "password"]
        },
        "UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "nombres": {"type": "string"},
                "apellidos": {"type": "string"}
            },
            "required": ["nombres", "apellidos"]
        },
        "ChangePasswordRequest": {
            "type": "object",
            "properties": {
                "password_actual": {"type": "string"},
                "password_nueva": {"type": "string"}
            },
            "required": ["password_actual", "password_nueva"]
        },
        "CreateDocenteRequest": {
            "type": "object",
            "properties": {
                "nombres": {"type": "string"},
                "apellidos": {"type": "string"},
                "materia": {"type": "string"},
                "usuario": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["nombres", "apellidos", "materia", "usuario", "password"]
        },
        "CreateEstudianteRequest": {
            "type": "object",
            "properties": {
                "nombres": {"type": "string"},
                "apellidos": {"type": "string"},
                "grado": {"type": "string"},
                "seccion": {"type": "string"},
                "fecha_nacimiento": {"type": "string"},
                "usuario": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["nombres", "apellidos", "grado", "seccion", "usuario", "password"]
        },
        "ConductaRequest": {
            "type": "object",
            "properties": {
                "nombre": {"type": "string"},
                "descripcion": {"type": "string"},
                "id_gravedad": {"type": "integer"}
            },
            "required": ["nombre", "descripcion", "id_gravedad"]
        },
        "RegistrarIncidenteRequest": {
            "type": "object",
            "properties": {
                "id_estudiante": {"type": "integer"},
                "id_conducta": {"type": "integer"},
                "acciones_tomadas": {"type": "string"},
                "comentarios": {"type": "string"}
            },
            "required": ["id_estudiante", "id_conducta"]
        },
        "RegistrarObservacionRequest": {
            "type": "object",
            "properties": {
                "id_estudiante": {"type": "integer"},
                "tipo": {"type": "string"},
                "descripcion": {"type": "string"}
            },
            "required": ["id_estudiante", "tipo", "descripcion"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
