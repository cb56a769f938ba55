package handlers

import (
	"net/http"

	"github.com/SscSPs/banking_portal/internal/core/domain"
	portssvc "github.com/SscSPs/banking_portal/internal/core/ports/services"
	"github.com/SscSPs/banking_portal/internal/dto"
	"github.com/SscSPs/banking_portal/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler accepts data fed in from the core banking system and the statement generator.
type adminHandler struct {
	accounts   portssvc.AccountProvisioner
	statements portssvc.StatementIngestSvc
}

func registerAdminRoutes(rg *gin.RouterGroup, users portssvc.UserReaderSvc, accounts portssvc.AccountProvisioner, statements portssvc.StatementIngestSvc) {
	h := &adminHandler{accounts: accounts, statements: statements}

	admin := rg.Group("/admin", middleware.RequireCapability(users, domain.RoleClientAdmin))
	{
		admin.POST("/accounts", h.provisionAccount)
		admin.POST("/statements", h.publishStatement)
	}
}

// provisionAccount godoc
// @Summary Provision an account
// @Description Registers an unlinked account with its verification digits. Requires CLIENT_ADMIN.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   request body dto.ProvisionAccountRequest true "Account"
// @Success 201 {object} dto.ProvisionAccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Account exists"
// @Security BearerAuth
// @Router /admin/accounts [post]
func (h *adminHandler) provisionAccount(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ProvisionAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	acct, err := h.accounts.ProvisionAccount(c.Request.Context(), req.AccountNumber, req.Last4SSN, adminID)
	if err != nil {
		respondError(c, err, "Failed to provision account")
		return
	}
	c.JSON(http.StatusCreated, dto.ProvisionAccountResponse{AccountNumber: acct.MaskedNumber(), LinkStatus: acct.LinkStatus})
}

// publishStatement godoc
// @Summary Publish statement metadata
// @Description Stores a rendered statement and notifies the linked owner. Requires CLIENT_ADMIN.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   request body dto.PublishStatementRequest true "Statement"
// @Success 201 {object} dto.StatementResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Statement exists"
// @Security BearerAuth
// @Router /admin/statements [post]
func (h *adminHandler) publishStatement(c *gin.Context) {
	var req dto.PublishStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	stmt, err := req.ToDomain()
	if err != nil {
		badRequest(c, "statementDate", err)
		return
	}
	published, err := h.statements.PublishStatement(c.Request.Context(), stmt)
	if err != nil {
		respondError(c, err, "Failed to publish statement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToStatementResponse(published))
}
