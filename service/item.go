package service

import (
	"strconv"
	"time"

	"nexuscrm/dao"
	"nexuscrm/logutils"
	"nexuscrm/model"
	"nexuscrm/response"

	"github.com/gin-gonic/gin"
)

type CreateItemReq struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description *string    `json:"description"`
	AssigneeID  *uint      `json:"assigned_to"`
	Priority    string     `json:"priority" binding:"required,oneof=low medium high urgent"`
	Status      string     `json:"status" binding:"required,oneof=todo in_progress review completed"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateItemReq struct {
	Title       *string    `json:"title" binding:"omitempty,max=255"`
	Description *string    `json:"description"`
	AssigneeID  *uint      `json:"assigned_to"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Status      *string    `json:"status" binding:"omitempty,oneof=todo in_progress review completed"`
	DueDate     *time.Time `json:"due_date"`
}

// RegisterItem mounts the task routes under both workspace prefixes
// plus the cross-workspace "my tasks" listing.
func (h *Handler) RegisterItem(g *gin.RouterGroup) {
	g.GET("/my-tasks", h.MyItems)
	for _, prefix := range []string{"/projects", "/deals"} {
		g.GET(prefix+"/:id/tasks", h.ListItems)
		g.POST(prefix+"/:id/tasks", h.CreateItem)
		g.GET(prefix+"/:id/tasks/:taskId", h.ShowItem)
		g.PUT(prefix+"/:id/tasks/:taskId", h.UpdateItem)
		g.DELETE(prefix+"/:id/tasks/:taskId", h.DeleteItem)
	}
}

func (h *Handler) ListItems(c *gin.Context) {
	wsID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !h.checker.CanAccessWorkspace(c.Request.Context(), currentUserID(c), wsID) {
		h.denyWorkspace(c, wsID)
		return
	}
	filter := dao.ItemFilter{Status: model.ItemStatus(c.Query("status"))}
	if raw := c.Query("assigned_to"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.BadRequestError(c, "assigned_to must be a user id")
			return
		}
		filter.AssigneeID = uint(id)
	}
	items, err := h.store.ListItems(c.Request.Context(), wsID, filter)
	if err != nil {
		logutils.Log.Error("list items: ", err)
		response.Error(c, "failed to list tasks", response.NotSpecified)
		return
	}
	response.Success(c, items)
}

func (h *Handler) CreateItem(c *gin.Context) {
	wsID, ok := pathID(c, "id")
	if !ok {
		return
	}
	user := currentUserID(c)
	if !h.checker.CanAccessWorkspace(c.Request.Context(), user, wsID) {
		h.denyWorkspace(c, wsID)
		return
	}
	var req CreateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	ws, err := h.store.GetWorkspace(c.Request.Context(), wsID)
	if err != nil {
		response.NotFoundError(c, "workspace not found")
		return
	}
	if req.AssigneeID != nil &&
		!h.checker.ValidateAssignee(c.Request.Context(), ws, *req.AssigneeID) {
		response.BadRequestError(c, "assigned user must be a member or the owner")
		return
	}
	item := model.Item{
		Title:       req.Title,
		Description: req.Description,
		WorkspaceID: wsID,
		AssigneeID:  req.AssigneeID,
		CreatorID:   user,
		Priority:    model.Priority(req.Priority),
		Status:      model.ItemStatus(req.Status),
		DueDate:     req.DueDate,
	}
	if err := h.store.CreateItem(c.Request.Context(), &item); err != nil {
		logutils.Log.Error("create item: ", err)
		response.Error(c, "failed to create task", response.NotSpecified)
		return
	}
	response.Success(c, item)
}

func (h *Handler) ShowItem(c *gin.Context) {
	wsID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "taskId")
	if !ok {
		return
	}
	if !h.checker.CanAccessWorkspace(c.Request.Context(), currentUserID(c), wsID) {
		h.denyWorkspace(c, wsID)
		return
	}
	item, err := h.store.GetItemDetail(c.Request.Context(), wsID, itemID)
	if err != nil {
		response.NotFoundError(c, "task not found")
		return
	}
	response.Success(c, item)
}

// UpdateItem is open to anyone with workspace access. The assignee is
// deliberately not re-validated on reassignment; only creation checks
// membership.
func (h *Handler) UpdateItem(c *gin.Context) {
	wsID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "taskId")
	if !ok {
		return
	}
	if !h.checker.CanAccessWorkspace(c.Request.Context(), currentUserID(c), wsID) {
		h.denyWorkspace(c, wsID)
		return
	}
	item, err := h.store.GetItem(c.Request.Context(), wsID, itemID)
	if err != nil {
		response.NotFoundError(c, "task not found")
		return
	}
	var req UpdateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.AssigneeID != nil {
		item.AssigneeID = req.AssigneeID
	}
	if req.Priority != nil {
		item.Priority = model.Priority(*req.Priority)
	}
	if req.Status != nil {
		item.Status = model.ItemStatus(*req.Status)
	}
	if req.DueDate != nil {
		item.DueDate = req.DueDate
	}
	if err := h.store.UpdateItem(c.Request.Context(), item); err != nil {
		logutils.Log.Error("update item: ", err)
		response.Error(c, "failed to update task", response.NotSpecified)
		return
	}
	response.Success(c, item)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	wsID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "taskId")
	if !ok {
		return
	}
	user := currentUserID(c)
	if !h.checker.CanAccessWorkspace(c.Request.Context(), user, wsID) {
		h.denyWorkspace(c, wsID)
		return
	}
	item, err := h.store.GetItem(c.Request.Context(), wsID, itemID)
	if err != nil {
		response.NotFoundError(c, "task not found")
		return
	}
	ws, err := h.store.GetWorkspace(c.Request.Context(), wsID)
	if err != nil {
		response.NotFoundError(c, "workspace not found")
		return
	}
	if !h.checker.CanDeleteItem(user, item, ws) {
		response.ForbiddenError(c, "only the creator or the workspace owner can delete a task")
		return
	}
	if err := h.store.DeleteItem(c.Request.Context(), itemID); err != nil {
		logutils.Log.Error("delete item: ", err)
		response.Error(c, "failed to delete task", response.NotSpecified)
		return
	}
	response.Success(c, nil)
}

// MyItems lists all items assigned to the caller across workspaces.
func (h *Handler) MyItems(c *gin.Context) {
	items, err := h.store.ListItemsByAssignee(c.Request.Context(), currentUserID(c))
	if err != nil {
		logutils.Log.Error("my items: ", err)
		response.Error(c, "failed to list tasks", response.NotSpecified)
		return
	}
	response.Success(c, items)
}
