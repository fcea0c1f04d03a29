package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyabroad-api/internal/middleware"
	"github.com/noah-isme/studyabroad-api/internal/models"
	appErrors "github.com/noah-isme/studyabroad-api/pkg/errors"
)

const dateLayout = "2006-01-02"

func actorID(c *gin.Context) string {
	if session := middleware.CurrentSession(c); session != nil {
		return session.UserID
	}
	return ""
}

func intQuery(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return fallback
}

func leadFilterFromQuery(c *gin.Context) (models.LeadFilter, error) {
	filter := models.LeadFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "limit", 20),
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, "from must be a YYYY-MM-DD date")
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, "to must be a YYYY-MM-DD date")
		}
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	return filter, nil
}
