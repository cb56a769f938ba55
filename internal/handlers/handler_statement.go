package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/banking_portal/internal/apperrors"
	"github.com/SscSPs/banking_portal/internal/core/domain"
	portssvc "github.com/SscSPs/banking_portal/internal/core/ports/services"
	"github.com/SscSPs/banking_portal/internal/dto"
	"github.com/SscSPs/banking_portal/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// statementHandler serves statements of the caller's linked accounts.
type statementHandler struct {
	statements portssvc.StatementAccessSvc
}

func registerStatementRoutes(rg *gin.RouterGroup, statements portssvc.StatementAccessSvc) {
	h := &statementHandler{statements: statements}

	group := rg.Group("/statements")
	{
		group.GET("", h.searchStatements)
		group.GET("/:statementID", h.viewStatement)
		group.GET("/:statementID/download", h.downloadStatement)
	}
}

// viewStatement godoc
// @Summary View statement metadata
// @Description Every successful view is recorded in the audit trail.
// @Tags statements
// @Produce  json
// @Param   statementID path string true "Statement ID"
// @Success 200 {object} dto.StatementResponse
// @Failure 403 {object} dto.ErrorResponse "Account not linked to caller"
// @Failure 404 {object} dto.ErrorResponse "Statement not found"
// @Failure 503 {object} dto.ErrorResponse "Audit trail unavailable"
// @Security BearerAuth
// @Router /statements/{statementID} [get]
func (h *statementHandler) viewStatement(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	stmt, err := h.statements.View(c.Request.Context(), c.Param("statementID"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementResponse(stmt))
}

// downloadStatement godoc
// @Summary Get the document reference of a statement
// @Tags statements
// @Produce  json
// @Param   statementID path string true "Statement ID"
// @Success 200 {object} dto.DownloadStatementResponse
// @Failure 403 {object} dto.ErrorResponse "Account not linked to caller"
// @Failure 404 {object} dto.ErrorResponse "Statement not found"
// @Security BearerAuth
// @Router /statements/{statementID}/download [get]
func (h *statementHandler) downloadStatement(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	statementID := c.Param("statementID")
	ref, err := h.statements.Download(c.Request.Context(), statementID, userID)
	if err != nil {
		respondError(c, err, "Failed to download statement")
		return
	}
	c.JSON(http.StatusOK, dto.DownloadStatementResponse{StatementID: statementID, DocumentRef: ref})
}

// searchStatements godoc
// @Summary Search the caller's statements by date
// @Description Newest first across all linked accounts. Dates are inclusive.
// @Tags statements
// @Produce  json
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListStatementsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Security BearerAuth
// @Router /statements [get]
func (h *statementHandler) searchStatements(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListStatementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	dateRange, err := parseDateRange(params.From, params.To)
	if err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	var after *domain.StatementCursor
	if params.NextToken != "" {
		cursor, err := pagination.DecodeStatementCursor(params.NextToken)
		if err != nil {
			badRequest(c, "nextToken", err)
			return
		}
		after = &cursor
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	seq, err := h.statements.SearchByDate(c.Request.Context(), userID, dateRange, after)
	if err != nil {
		respondError(c, err, "Failed to search statements")
		return
	}

	resp := dto.ListStatementsResponse{Statements: make([]dto.StatementResponse, 0, limit)}
	for stmt, err := range seq {
		if err != nil {
			respondError(c, err, "Failed to search statements")
			return
		}
		if len(resp.Statements) == limit {
			last := resp.Statements[limit-1]
			resp.NextToken = pagination.EncodeStatementCursor(domain.StatementCursor{StatementDate: last.StatementDate, StatementID: last.StatementID})
			break
		}
		resp.Statements = append(resp.Statements, dto.ToStatementResponse(&stmt))
	}
	c.JSON(http.StatusOK, resp)
}

// parseDateRange reads inclusive date-only bounds. The upper bound covers the whole day.
func parseDateRange(from, to string) (domain.DateRange, error) {
	var r domain.DateRange
	if from != "" {
		t, err := time.Parse(dto.DateLayout, from)
		if err != nil {
			return r, fmt.Errorf("%w: from: %w", apperrors.ErrValidation, err)
		}
		r.From = t
	}
	if to != "" {
		t, err := time.Parse(dto.DateLayout, to)
		if err != nil {
			return r, fmt.Errorf("%w: to: %w", apperrors.ErrValidation, err)
		}
		r.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	if !r.IsValid() {
		return r, fmt.Errorf("%w: from is after to", apperrors.ErrValidation)
	}
	return r, nil
}
