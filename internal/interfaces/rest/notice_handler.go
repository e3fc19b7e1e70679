package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rankmath/repair-action-scheduler/internal/application/services"
	"github.com/rankmath/repair-action-scheduler/internal/domain"
	"github.com/rankmath/repair-action-scheduler/internal/domain/models"
	"github.com/rankmath/repair-action-scheduler/internal/domain/schema"
	"github.com/rankmath/repair-action-scheduler/pkg/errors"
)

// RepairRunner is the part of RepairService the HTTP surface uses
type RepairRunner interface {
	Invoke(ctx context.Context) (*services.InvokeResult, error)
	Status(ctx context.Context) (domain.RepairState, *models.RepairRecord, error)
}

// NoticeHandler serves the one-time repair notice over HTTP
type NoticeHandler struct {
	svc            RepairRunner
	prefix         string
	charsetCollate string
}

// NewNoticeHandler creates a NoticeHandler
func NewNoticeHandler(svc RepairRunner, prefix, charsetCollate string) *NoticeHandler {
	return &NoticeHandler{svc: svc, prefix: prefix, charsetCollate: charsetCollate}
}

// InvokeNotices handles POST /api/notices
// Each call is one invocation: it may run the repair, or return the pending notice once.
func (h *NoticeHandler) InvokeNotices(c *gin.Context) {
	result, err := h.svc.Invoke(c.Request.Context())
	if err != nil {
		RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":  result.State,
		"notice": result.Notice,
	})
}

// GetStatus handles GET /api/status
func (h *NoticeHandler) GetStatus(c *gin.Context) {
	state, record, err := h.svc.Status(c.Request.Context())
	if err != nil {
		RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":  state,
		"record": record,
	})
}

// GetSchema handles GET /api/schema/:table
func (h *NoticeHandler) GetSchema(c *gin.Context) {
	name := strings.ToLower(c.Param("table"))
	spec, ok := schema.Lookup(name)
	if !ok {
		RespondAppError(c, errors.NewNotFoundError("Table", name))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"table":          spec.Name,
		"primary_column": spec.PrimaryColumn,
		"ddl":            spec.DDL(h.prefix, h.charsetCollate),
	})
}
