package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/chat-sessions/internal/chat"
	"github.com/suPer8Hu/chat-sessions/internal/common"
	"github.com/suPer8Hu/chat-sessions/internal/httpapi/handlers"
	"github.com/suPer8Hu/chat-sessions/internal/httpapi/middleware"
)

func NewRouter(chatSvc *chat.Service) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	h := handlers.NewHandler(chatSvc)

	r.GET("/ping", h.Ping)

	r.POST("/sessions", h.CreateSession)
	r.POST("/sessions/:session_id/messages", h.AddMessage)
	r.GET("/sessions/:session_id/messages", h.GetMessages)
	return r
}
