package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neuralease/neuralease/internal/services"
	"github.com/neuralease/neuralease/internal/utils"
)

type ChatHandler struct {
	svc services.ChatService
}

func NewChatHandler(svc services.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type SendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

type EditMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *ChatHandler) Send(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ChatHandler.Send", "invalid request body", err))
		return
	}

	result, err := h.svc.HandleMessage(c.Request.Context(), userID, c.Param("conversation_id"), req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ChatHandler) Edit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ChatHandler.Edit", "invalid request body", err))
		return
	}

	if err := h.svc.HandleEdit(c.Request.Context(), userID, c.Param("conversation_id"), c.Param("message_id"), req.Message); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "edited"})
}

func (h *ChatHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.HandleDelete(c.Request.Context(), userID, c.Param("conversation_id"), c.Param("message_id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
