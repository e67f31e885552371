package service

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"nexuscrm/dao"
	"nexuscrm/logutils"
	"nexuscrm/model"
	"nexuscrm/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateWorkspaceReq struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description *string    `json:"description"`
	Value       *float64   `json:"deal_value"`
	Stage       *string    `json:"pipeline_stage"`
	ContactID   *uint      `json:"contact_id"`
	Type        *string    `json:"type"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type UpdateWorkspaceReq struct {
	Title       *string  `json:"title" binding:"omitempty,max=255"`
	Description *string  `json:"description"`
	Value       *float64 `json:"deal_value"`
	Stage       *string  `json:"pipeline_stage"`
	ContactID   *uint    `json:"contact_id"`
}

type AddMemberReq struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=admin member"`
}

// RegisterWorkspace mounts the workspace routes. The same handlers
// serve /projects and /deals: two route generations of the front end
// share one backend.
func (h *Handler) RegisterWorkspace(g *gin.RouterGroup) {
	for _, prefix := range []string{"/projects", "/deals"} {
		g.GET(prefix, h.ListWorkspaces)
		g.POST(prefix, h.CreateWorkspace)
		g.GET(prefix+"/:id", h.ShowWorkspace)
		g.PUT(prefix+"/:id", h.UpdateWorkspace)
		g.DELETE(prefix+"/:id", h.DeleteWorkspace)
		g.POST(prefix+"/:id/members", h.AddWorkspaceMember)
	}
}

func (h *Handler) ListWorkspaces(c *gin.Context) {
	wsType := model.WorkspaceType(c.DefaultQuery("type", string(model.TypeTeam)))
	workspaces, err := h.store.ListWorkspacesForUser(c.Request.Context(), currentUserID(c), wsType)
	if err != nil {
		logutils.Log.Error("list workspaces: ", err)
		response.Error(c, "failed to list workspaces", response.NotSpecified)
		return
	}
	response.Success(c, workspaces)
}

func (h *Handler) CreateWorkspace(c *gin.Context) {
	var req CreateWorkspaceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	ws := model.Workspace{
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     currentUserID(c),
		Type:        model.TypeTeam,
		Stage:       model.StageDiscovery,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Value != nil {
		ws.Value = *req.Value
	}
	if req.Stage != nil {
		stage := model.Stage(*req.Stage)
		if !stage.Valid() {
			response.BadRequestError(c, "unknown pipeline stage")
			return
		}
		ws.Stage = stage
	}
	if req.Type != nil {
		wsType := model.WorkspaceType(*req.Type)
		if wsType != model.TypeTeam && wsType != model.TypePersonal {
			response.BadRequestError(c, "type must be team or personal")
			return
		}
		ws.Type = wsType
	}
	if req.ContactID != nil {
		if _, err := h.store.GetContact(c.Request.Context(), *req.ContactID); err != nil {
			response.BadRequestError(c, "contact does not exist")
			return
		}
		ws.ContactID = req.ContactID
	}
	if err := h.store.CreateWorkspace(c.Request.Context(), &ws); err != nil {
		logutils.Log.Error("create workspace: ", err)
		response.Error(c, "failed to create workspace", response.NotSpecified)
		return
	}
	response.Success(c, ws)
}

func (h *Handler) ShowWorkspace(c *gin.Context) {
	wsID, ok := pathID(c, "id")
	if !ok {
		return
	}
	user := currentUserID(c)
	if !h.checker.CanAccessWorkspace(c.Request.Context(), user, wsID) {
		h.denyWorkspace(c, wsID)
		return
	}
	ws, err := h.store.GetWorkspaceDetail(c.Request.Context(), wsID)
	if err != nil {
		response.NotFoundError(c, "workspace not found")
		return
	}
	response.Success(c, ws)
}

func (h *Handler) UpdateWorkspace(c *gin.Context) {
	wsID, ok := pathID(c, "id")
	if !ok {
		return
	}
	ws, err := h.store.GetWorkspace(c.Request.Context(), wsID)
	if err != nil {
		response.NotFoundError(c, "workspace not found")
		return
	}
	if !h.checker.CanModifyWorkspace(currentUserID(c), ws) {
		response.ForbiddenError(c, "only the owner can update the workspace")
		return
	}
	var req UpdateWorkspaceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	if req.Title != nil {
		ws.Title = *req.Title
	}
	if req.Description != nil {
		ws.Description = req.Description
	}
	if req.Value != nil {
		ws.Value = *req.Value
	}
	if req.Stage != nil {
		stage := model.Stage(*req.Stage)
		if !stage.Valid() {
			response.BadRequestError(c, "unknown pipeline stage")
			return
		}
		ws.Stage = stage
	}
	if req.ContactID != nil {
		if _, err := h.store.GetContact(c.Request.Context(), *req.ContactID); err != nil {
			response.BadRequestError(c, "contact does not exist")
			return
		}
		ws.ContactID = req.ContactID
	}
	if err := h.store.UpdateWorkspace(c.Request.Context(), ws); err != nil {
		logutils.Log.Error("update workspace: ", err)
		response.Error(c, "failed to update workspace", response.NotSpecified)
		return
	}
	response.Success(c, ws)
}

func (h *Handler) DeleteWorkspace(c *gin.Context) {
	wsID, ok := pathID(c, "id")
	if !ok {
		return
	}
	ws, err := h.store.GetWorkspace(c.Request.Context(), wsID)
	if err != nil {
		response.NotFoundError(c, "workspace not found")
		return
	}
	if !h.checker.CanModifyWorkspace(currentUserID(c), ws) {
		response.ForbiddenError(c, "only the owner can delete the workspace")
		return
	}
	if err := h.store.DeleteWorkspace(c.Request.Context(), wsID); err != nil {
		logutils.Log.Error("delete workspace: ", err)
		response.Error(c, "failed to delete workspace", response.NotSpecified)
		return
	}
	response.Success(c, nil)
}

func (h *Handler) AddWorkspaceMember(c *gin.Context) {
	wsID, ok := pathID(c, "id")
	if !ok {
		return
	}
	ws, err := h.store.GetWorkspace(c.Request.Context(), wsID)
	if err != nil {
		response.NotFoundError(c, "workspace not found")
		return
	}
	if !h.checker.CanModifyWorkspace(currentUserID(c), ws) {
		response.ForbiddenError(c, "only the owner can add members")
		return
	}
	var req AddMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	if _, err := h.store.GetUser(c.Request.Context(), req.UserID); err != nil {
		response.BadRequestError(c, "user does not exist")
		return
	}
	err = h.store.AddMember(c.Request.Context(), wsID, req.UserID, model.MemberRole(req.Role))
	if err != nil {
		if errors.Is(err, dao.ErrAlreadyMember) {
			response.HTTPError(c, http.StatusConflict, err.Error(), response.AlreadyExists)
			return
		}
		logutils.Log.Error("add member: ", err)
		response.Error(c, "failed to add member", response.NotSpecified)
		return
	}
	response.Success(c, nil)
}

// denyWorkspace picks between 404 and 403 after a failed access
// check: missing workspaces are not-found, existing ones forbidden.
func (h *Handler) denyWorkspace(c *gin.Context, wsID uint) {
	if _, err := h.store.GetWorkspace(c.Request.Context(), wsID); errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFoundError(c, "workspace not found")
		return
	}
	response.ForbiddenError(c, "no access to this workspace")
}

// pathID parses a numeric path parameter, replying 404 on junk ids.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.NotFoundError(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
