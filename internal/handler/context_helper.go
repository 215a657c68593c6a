package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/controledu/controledu-api/internal/middleware"
	"github.com/controledu/controledu-api/internal/models"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
)

func sessionFromContext(c *gin.Context) *models.Session {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return nil
	}
	return session
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "identificador invalido")
	}
	return id, nil
}

func queryInt64(c *gin.Context, name string) int64 {
	value, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return value
}

func queryDate(c *gin.Context, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &parsed
}

func queryBool(c *gin.Context, name string) *bool {
	switch c.Query(name) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}
