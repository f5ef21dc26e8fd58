package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RostHarcha/clickup-tracker/models"
	"github.com/RostHarcha/clickup-tracker/repository"
	"github.com/RostHarcha/clickup-tracker/types"
)

// TokenHeader carries the ClickUp API token. The token is both the
// credential and the account lookup key; there is no separate session.
const TokenHeader = "X-ClickUp-API-Token"

// AccountStore is the persistence surface the handlers need.
// *repository.AccountsRepository satisfies it; tests substitute a fake.
type AccountStore interface {
	Create(payload models.AccountCreate) (*models.Account, error)
	GetByToken(token string) (*models.Account, error)
	Update(token string, payload models.AccountUpdate) (*models.Account, error)
}

type AccountsHandler struct {
	store         AccountStore
	defaultTeamID int64
}

func NewAccountsHandler(store AccountStore, defaultTeamID int64) *AccountsHandler {
	return &AccountsHandler{store: store, defaultTeamID: defaultTeamID}
}

// AccountMiddleware resolves the caller's account from the token header and
// stores it in the gin context. An unknown token is an expected condition
// and maps to 404.
func AccountMiddleware(store AccountStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			c.JSON(http.StatusUnauthorized, types.NewErrorResponse(types.ErrorCodeUnauthorized, TokenHeader+" header required"))
			c.Abort()
			return
		}
		acc, err := store.GetByToken(token)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
			c.Abort()
			return
		}
		if acc == nil {
			c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Account not found"))
			c.Abort()
			return
		}
		c.Set("account", acc)
		c.Set("accountId", acc.ID.String())
		c.Next()
	}
}

func (h *AccountsHandler) CreateAccount(c *gin.Context) {
	var req models.AccountCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if !req.HourlyRate.IsPositive() {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "hourly_rate must be a positive number"))
		return
	}
	if req.TeamID == 0 {
		req.TeamID = h.defaultTeamID
	}

	acc, err := h.store.Create(req)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, types.NewErrorResponse(types.ErrorCodeConflict, "Account with this token or personal folder already exists"))
			return
		}
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, types.NewSuccessResponse(acc))
}

func (h *AccountsHandler) GetAccount(c *gin.Context) {
	acc := c.MustGet("account").(*models.Account)
	c.JSON(http.StatusOK, types.NewSuccessResponse(acc))
}

func (h *AccountsHandler) UpdateAccount(c *gin.Context) {
	acc := c.MustGet("account").(*models.Account)

	var req models.AccountUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if req.HourlyRate != nil && !req.HourlyRate.IsPositive() {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "hourly_rate must be a positive number"))
		return
	}

	updated, err := h.store.Update(acc.ClickUpAPIToken, req)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, types.NewErrorResponse(types.ErrorCodeConflict, "Account with this token or personal folder already exists"))
			return
		}
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Account not found"))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(updated))
}
