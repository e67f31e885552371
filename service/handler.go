package service

import (
	"nexuscrm/access"
	"nexuscrm/dao"
	"nexuscrm/dashboard"
	"nexuscrm/util"

	"github.com/gin-gonic/gin"
)

// Handler carries the store, the access checker and the dashboard
// aggregator shared by all routes.
type Handler struct {
	store   *dao.Store
	checker *access.Checker
	agg     *dashboard.Aggregator
	tokens  *util.TokenManager
}

func NewHandler(store *dao.Store, tokens *util.TokenManager) *Handler {
	return &Handler{
		store:   store,
		checker: access.NewChecker(store),
		agg:     dashboard.NewAggregator(store),
		tokens:  tokens,
	}
}

// Register mounts all authenticated routes on the group.
func (h *Handler) Register(g *gin.RouterGroup) {
	h.RegisterAuth(g)
	h.RegisterWorkspace(g)
	h.RegisterItem(g)
	h.RegisterNote(g)
	h.RegisterContact(g)
	h.RegisterDashboard(g)
}
