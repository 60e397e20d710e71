package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/chat-sessions/internal/chat"
	"github.com/suPer8Hu/chat-sessions/internal/common"
	"github.com/suPer8Hu/chat-sessions/internal/observability"
)

const (
	codeInvalidJSON      = 10001
	codeInvalidArgument  = 10002
	codeInvalidSessionID = 10004
	codeSessionNotFound  = 40401
	codeInternal         = 50001
)

type createSessionReq struct {
	SessionUser string `json:"session_user"`
}

type sessionResp struct {
	SessionID   int64  `json:"session_id"`
	SessionUser string `json:"session_user"`
	CreatedAt   string `json:"created_at"`
}

type addMessageReq struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, codeInvalidJSON, "invalid json")
		return
	}

	sess, err := h.ChatSvc.CreateSession(c.Request.Context(), req.SessionUser)
	if err != nil {
		h.failChat(c, err, "CreateSession")
		return
	}

	c.JSON(http.StatusOK, sessionResp{
		SessionID:   sess.ID,
		SessionUser: sess.User,
		CreatedAt:   sess.CreatedAt.UTC().Format(chat.TimestampLayout),
	})
}

func (h *Handler) AddMessage(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var req addMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, codeInvalidJSON, "invalid json")
		return
	}

	if err := h.ChatSvc.AddMessage(c.Request.Context(), sessionID, req.Role, req.Content); err != nil {
		h.failChat(c, err, "AddMessage")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "message added"})
}

func (h *Handler) GetMessages(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	// absent -> no filter; present (even empty) -> must be a known role
	var role *string
	if v, present := c.GetQuery("role"); present {
		role = &v
	}

	msgs, err := h.ChatSvc.GetMessages(c.Request.Context(), sessionID, role)
	if err != nil {
		h.failChat(c, err, "GetMessages")
		return
	}

	c.JSON(http.StatusOK, msgs)
}

// sessionIDParam rejects only non-integers. Out-of-range integers can never
// name a session, so they are reported as not found like any other unknown id.
func sessionIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("session_id"), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			common.Fail(c, http.StatusNotFound, codeSessionNotFound, "session not found")
			return 0, false
		}
		common.Fail(c, http.StatusBadRequest, codeInvalidSessionID, "invalid session id")
		return 0, false
	}
	return id, true
}

func (h *Handler) failChat(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, chat.ErrNotFound):
		common.Fail(c, http.StatusNotFound, codeSessionNotFound, "session not found")
	case errors.Is(err, chat.ErrInvalidArgument):
		common.Fail(c, http.StatusBadRequest, codeInvalidArgument, validationMessage(err))
	default:
		observability.LoggerFromContext(c.Request.Context()).Error("chat operation failed",
			"op", op, "error", err)
		common.Fail(c, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, chat.ErrEmptyUsername):
		return "username cannot be empty"
	case errors.Is(err, chat.ErrInvalidRoleFilter):
		return "invalid role filter"
	case errors.Is(err, chat.ErrInvalidRole):
		return "invalid role"
	case errors.Is(err, chat.ErrEmptyContent):
		return "content cannot be empty"
	default:
		return "invalid argument"
	}
}
