package service

import (
	"errors"

	"nexuscrm/dashboard"
	"nexuscrm/logutils"
	"nexuscrm/response"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RegisterDashboard(g *gin.RouterGroup) {
	g.GET("/dashboard", h.Dashboard)
}

func (h *Handler) Dashboard(c *gin.Context) {
	summary, err := h.agg.Summary(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, dashboard.ErrAggregationFailed) {
			logutils.Log.Error("dashboard: ", err)
			response.Error(c, "failed to build dashboard", response.NotSpecified)
			return
		}
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	response.Success(c, summary)
}
