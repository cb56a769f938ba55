package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/banking_portal/internal/core/ports/services"
	"github.com/SscSPs/banking_portal/internal/dto"
	"github.com/SscSPs/banking_portal/internal/middleware"
	"github.com/gin-gonic/gin"
)

// linkingHandler handles HTTP requests for linking accounts to the caller's profile.
type linkingHandler struct {
	linking  portssvc.LinkingSvc
	accounts portssvc.AccountReaderSvc
}

func registerLinkingRoutes(rg *gin.RouterGroup, linking portssvc.LinkingSvc, accounts portssvc.AccountReaderSvc) {
	h := &linkingHandler{linking: linking, accounts: accounts}

	group := rg.Group("/accounts")
	{
		group.GET("", h.listLinkedAccounts)
		group.POST("/link", h.linkAccount)
		group.POST("/:accountNumber/unlink", h.unlinkAccount)
	}
}

// linkAccount godoc
// @Summary Link an account to the caller
// @Description Verifies the last four SSN digits and links the account. Expected failures are reported in the body.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   request body dto.LinkAccountRequest true "Account number and verification digits"
// @Success 200 {object} dto.LinkAccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 429 {object} dto.ErrorResponse "Too many failed verification attempts"
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Security BearerAuth
// @Router /accounts/link [post]
func (h *linkingHandler) linkAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.LinkAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	outcome, err := h.linking.LinkAccount(c.Request.Context(), userID, req.AccountNumber, req.Last4SSN)
	if err != nil {
		respondError(c, err, "Failed to link account")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Linking episode finished",
		slog.String("state", string(outcome.State)))
	c.JSON(http.StatusOK, dto.ToLinkAccountResponse(req.AccountNumber, outcome))
}

// unlinkAccount godoc
// @Summary Unlink an account from the caller
// @Tags accounts
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Success 200 {object} dto.UnlinkAccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid account number"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountNumber}/unlink [post]
func (h *linkingHandler) unlinkAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	accountNumber := c.Param("accountNumber")

	outcome, err := h.linking.UnlinkAccount(c.Request.Context(), userID, accountNumber)
	if err != nil {
		respondError(c, err, "Failed to unlink account")
		return
	}
	c.JSON(http.StatusOK, dto.ToUnlinkAccountResponse(accountNumber, outcome))
}

// listLinkedAccounts godoc
// @Summary List the caller's linked accounts
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /accounts [get]
func (h *linkingHandler) listLinkedAccounts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	accounts, err := h.accounts.ListLinkedAccounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts))
}
