package service

import (
	"nexuscrm/logutils"
	"nexuscrm/model"
	"nexuscrm/response"

	"github.com/gin-gonic/gin"
)

type NoteReq struct {
	Content string `json:"content" binding:"required"`
}

// RegisterNote mounts the comment routes. Comments hang off items
// directly, not off the workspace path.
func (h *Handler) RegisterNote(g *gin.RouterGroup) {
	g.GET("/tasks/:taskId/comments", h.ListNotes)
	g.POST("/tasks/:taskId/comments", h.CreateNote)
	g.PUT("/tasks/:taskId/comments/:commentId", h.UpdateNote)
	g.DELETE("/tasks/:taskId/comments/:commentId", h.DeleteNote)
}

// findItemForNotes resolves the item by id alone (comments address
// items globally) and checks workspace access for the caller.
func (h *Handler) findItemForNotes(c *gin.Context) (*model.Item, bool) {
	itemID, ok := pathID(c, "taskId")
	if !ok {
		return nil, false
	}
	item, err := h.store.GetItemByID(c.Request.Context(), itemID)
	if err != nil {
		response.NotFoundError(c, "task not found")
		return nil, false
	}
	if !h.checker.CanAccessWorkspace(c.Request.Context(), currentUserID(c), item.WorkspaceID) {
		response.ForbiddenError(c, "no access to this workspace")
		return nil, false
	}
	return item, true
}

func (h *Handler) ListNotes(c *gin.Context) {
	item, ok := h.findItemForNotes(c)
	if !ok {
		return
	}
	notes, err := h.store.ListNotes(c.Request.Context(), item.ID)
	if err != nil {
		logutils.Log.Error("list notes: ", err)
		response.Error(c, "failed to list comments", response.NotSpecified)
		return
	}
	response.Success(c, notes)
}

func (h *Handler) CreateNote(c *gin.Context) {
	item, ok := h.findItemForNotes(c)
	if !ok {
		return
	}
	var req NoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	note := model.Note{
		ItemID:   item.ID,
		AuthorID: currentUserID(c),
		Content:  req.Content,
	}
	if err := h.store.CreateNote(c.Request.Context(), &note); err != nil {
		logutils.Log.Error("create note: ", err)
		response.Error(c, "failed to create comment", response.NotSpecified)
		return
	}
	response.Success(c, note)
}

func (h *Handler) UpdateNote(c *gin.Context) {
	itemID, ok := pathID(c, "taskId")
	if !ok {
		return
	}
	noteID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	note, err := h.store.GetNote(c.Request.Context(), itemID, noteID)
	if err != nil {
		response.NotFoundError(c, "comment not found")
		return
	}
	if !h.checker.CanModifyNote(currentUserID(c), note) {
		response.ForbiddenError(c, "only the author can edit a comment")
		return
	}
	var req NoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	note.Content = req.Content
	if err := h.store.UpdateNote(c.Request.Context(), note); err != nil {
		logutils.Log.Error("update note: ", err)
		response.Error(c, "failed to update comment", response.NotSpecified)
		return
	}
	response.Success(c, note)
}

func (h *Handler) DeleteNote(c *gin.Context) {
	itemID, ok := pathID(c, "taskId")
	if !ok {
		return
	}
	noteID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	note, err := h.store.GetNote(c.Request.Context(), itemID, noteID)
	if err != nil {
		response.NotFoundError(c, "comment not found")
		return
	}
	if !h.checker.CanModifyNote(currentUserID(c), note) {
		response.ForbiddenError(c, "only the author can delete a comment")
		return
	}
	if err := h.store.DeleteNote(c.Request.Context(), note.ID); err != nil {
		logutils.Log.Error("delete note: ", err)
		response.Error(c, "failed to delete comment", response.NotSpecified)
		return
	}
	response.Success(c, nil)
}
