package handler

import (
	"errors"
	"net/http"

	"kanny/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CardHandler struct {
	svc *service.CardService
}

func NewCardHandler(svc *service.CardService) *CardHandler {
	return &CardHandler{svc: svc}
}

type CreateCardRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

type UpdateCardRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

// MoveCardRequest uses a pointer for position so 0 binds as a valid value.
type MoveCardRequest struct {
	ColumnID string `json:"columnId" binding:"required"`
	Position *int   `json:"position" binding:"required"`
}

// Create appends a card at the end of the column.
func (h *CardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	columnID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Card title is required"})
		return
	}

	card, err := h.svc.Create(c.Request.Context(), columnID, req.Title, req.Description, userID)
	if err != nil {
		if errors.Is(err, service.ErrColumnNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}

	c.JSON(http.StatusCreated, card)
}

func (h *CardHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Card title is required"})
		return
	}

	card, err := h.svc.Update(c.Request.Context(), cardID, req.Title, req.Description, userID)
	if err != nil {
		if errors.Is(err, service.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card"})
		return
	}

	c.JSON(http.StatusOK, card)
}

func (h *CardHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), cardID, userID); err != nil {
		if errors.Is(err, service.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Card deleted successfully"})
}

func (h *CardHandler) Move(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cardID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Column ID and position are required"})
		return
	}

	targetColumnID, err := uuid.Parse(req.ColumnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID format"})
		return
	}

	if err := h.svc.Move(c.Request.Context(), cardID, targetColumnID, *req.Position, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrCardNotFound), errors.Is(err, service.ErrTargetColumnNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidPosition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move card"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
