package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RostHarcha/clickup-tracker/models"
	"github.com/RostHarcha/clickup-tracker/pkg/timeutil"
	"github.com/RostHarcha/clickup-tracker/report"
	"github.com/RostHarcha/clickup-tracker/types"
)

type ReportsHandler struct {
	location       *time.Location
	clickupBaseURL string
}

// NewReportsHandler builds the report endpoint. location controls the
// calendar-day interpretation of query dates; clickupBaseURL is empty in
// production and points at a fixture server in tests.
func NewReportsHandler(location *time.Location, clickupBaseURL string) *ReportsHandler {
	if location == nil {
		location = time.UTC
	}
	return &ReportsHandler{location: location, clickupBaseURL: clickupBaseURL}
}

// GetReport renders a plain-text work-time report for the authenticated
// account over [from_date, to_date].
func (h *ReportsHandler) GetReport(c *gin.Context) {
	acc := c.MustGet("account").(*models.Account)

	fromDate, err := time.ParseInLocation("2006-01-02", c.Query("from_date"), h.location)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "from_date must be YYYY-MM-DD"))
		return
	}
	toDate, err := time.ParseInLocation("2006-01-02", c.Query("to_date"), h.location)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "to_date must be YYYY-MM-DD"))
		return
	}

	rep, err := report.Create(c.Request.Context(), report.Options{
		BaseURL:          h.clickupBaseURL,
		APIToken:         acc.ClickUpAPIToken,
		TeamID:           acc.TeamID,
		From:             timeutil.StartOfDay(fromDate),
		To:               timeutil.EndOfDay(toDate),
		HourlyRate:       acc.HourlyRate,
		PersonalFolderID: acc.PersonalFolderID,
		Location:         h.location,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, types.NewErrorResponse(types.ErrorCodeUpstream, err.Error()))
		return
	}
	c.String(http.StatusOK, rep.String())
}
