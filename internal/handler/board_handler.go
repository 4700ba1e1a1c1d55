package handler

import (
	"errors"
	"net/http"

	"kanny/internal/service"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	svc *service.BoardService
}

func NewBoardHandler(svc *service.BoardService) *BoardHandler {
	return &BoardHandler{svc: svc}
}

type CreateBoardRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateBoardRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *BoardHandler) GetAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boards, err := h.svc.GetBoards(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve boards"})
		return
	}

	c.JSON(http.StatusOK, boards)
}

// GetCurrent returns the user's board, auto-provisioning one with the three
// default columns on first access.
func (h *BoardHandler) GetCurrent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	board, err := h.svc.GetOrCreateBoard(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}

	c.JSON(http.StatusOK, board)
}

func (h *BoardHandler) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	board, err := h.svc.GetBoard(c.Request.Context(), boardID, userID)
	if err != nil {
		if errors.Is(err, service.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return
	}

	c.JSON(http.StatusOK, board)
}

func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Board name is required"})
		return
	}

	board, err := h.svc.CreateBoard(c.Request.Context(), userID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	c.JSON(http.StatusCreated, board)
}

func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Board name is required"})
		return
	}

	board, err := h.svc.UpdateBoard(c.Request.Context(), boardID, userID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}

	c.JSON(http.StatusOK, board)
}

func (h *BoardHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteBoard(c.Request.Context(), boardID, userID); err != nil {
		if errors.Is(err, service.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete board"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}
