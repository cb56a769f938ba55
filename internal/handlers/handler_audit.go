package handlers

import (
	"net/http"

	"github.com/SscSPs/banking_portal/internal/core/domain"
	portssvc "github.com/SscSPs/banking_portal/internal/core/ports/services"
	"github.com/SscSPs/banking_portal/internal/dto"
	"github.com/SscSPs/banking_portal/internal/middleware"
	"github.com/SscSPs/banking_portal/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// auditHandler exposes the audit trail: the whole trail to client admins, and each
// user's own entries to that user.
type auditHandler struct {
	audit portssvc.AuditQuerier
}

func registerAuditRoutes(rg *gin.RouterGroup, audit portssvc.AuditQuerier, users portssvc.UserReaderSvc) {
	h := &auditHandler{audit: audit}

	rg.GET("/audit", middleware.RequireCapability(users, domain.RoleClientAdmin), h.listAudit)
	rg.GET("/me/audit", h.listOwnAudit)
}

// listAudit godoc
// @Summary Query the audit trail
// @Description Entries in recorded order. Requires the CLIENT_ADMIN capability.
// @Tags audit
// @Produce  json
// @Param   actor query string false "Actor filter"
// @Param   action query string false "Action filter"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListAuditResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 403 {object} dto.ErrorResponse "Not authorized"
// @Security BearerAuth
// @Router /audit [get]
func (h *auditHandler) listAudit(c *gin.Context) {
	h.query(c, "")
}

// listOwnAudit godoc
// @Summary Query the caller's own audit entries
// @Tags audit
// @Produce  json
// @Param   action query string false "Action filter"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListAuditResponse
// @Security BearerAuth
// @Router /me/audit [get]
func (h *auditHandler) listOwnAudit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	h.query(c, userID)
}

// query serves one page. A non-empty forcedActor overrides the actor filter.
func (h *auditHandler) query(c *gin.Context, forcedActor string) {
	var params dto.ListAuditParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}

	var filter domain.AuditFilter
	if forcedActor != "" {
		filter.Actor = &forcedActor
	} else if params.Actor != "" {
		filter.Actor = &params.Actor
	}
	if params.Action != "" {
		action := domain.AuditAction(params.Action)
		filter.Action = &action
	}
	if params.From != "" || params.To != "" {
		dateRange, err := parseDateRange(params.From, params.To)
		if err != nil {
			badRequest(c, "query parameters", err)
			return
		}
		filter.DateRange = &dateRange
	}
	if params.NextToken != "" {
		cursor, err := pagination.DecodeAuditCursor(params.NextToken)
		if err != nil {
			badRequest(c, "nextToken", err)
			return
		}
		filter.After = &cursor
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	entries, next, err := h.audit.QueryPage(c.Request.Context(), filter, limit)
	if err != nil {
		respondError(c, err, "Failed to query audit trail")
		return
	}
	resp := dto.ListAuditResponse{Entries: dto.ToAuditEntryResponses(entries)}
	if next != nil {
		resp.NextToken = pagination.EncodeAuditCursor(*next)
	}
	c.JSON(http.StatusOK, resp)
}
