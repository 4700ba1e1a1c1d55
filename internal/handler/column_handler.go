package handler

import (
	"errors"
	"net/http"

	"kanny/internal/service"

	"github.com/gin-gonic/gin"
)

type ColumnHandler struct {
	svc *service.ColumnService
}

func NewColumnHandler(svc *service.ColumnService) *ColumnHandler {
	return &ColumnHandler{svc: svc}
}

type CreateColumnRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateColumnRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create appends a column at the end of the board.
func (h *ColumnHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Column name is required"})
		return
	}

	column, err := h.svc.Create(c.Request.Context(), boardID, req.Name, userID)
	if err != nil {
		if errors.Is(err, service.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create column"})
		return
	}

	c.JSON(http.StatusCreated, column)
}

func (h *ColumnHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	columnID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Column name is required"})
		return
	}

	column, err := h.svc.Update(c.Request.Context(), columnID, req.Name, userID)
	if err != nil {
		if errors.Is(err, service.ErrColumnNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update column"})
		return
	}

	c.JSON(http.StatusOK, column)
}

func (h *ColumnHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	columnID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), columnID, userID); err != nil {
		if errors.Is(err, service.ErrColumnNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete column"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Column deleted successfully"})
}
