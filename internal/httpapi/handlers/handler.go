package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/chat-sessions/internal/chat"
)

type Handler struct {
	ChatSvc *chat.Service
}

func NewHandler(chatSvc *chat.Service) *Handler {
	return &Handler{ChatSvc: chatSvc}
}

func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
