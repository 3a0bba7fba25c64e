package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/suchimauz/gcal-booking-agent/internal/config"
	"github.com/suchimauz/gcal-booking-agent/internal/core/ports/in"
	"github.com/suchimauz/gcal-booking-agent/internal/core/ports/out"
)

type ChatController struct {
	useCase in.ChatUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewChatController(useCase in.ChatUseCase, cfg *config.Config, logger out.LoggerPort) *ChatController {
	return &ChatController{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}
}

func (c *ChatController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.POST("/chat", c.chat)
		api.GET("/sessions/:sessionId", c.sessionHistory)
	}
}

type ChatRequest struct {
	// SessionID не обязателен: без него начинается новый диалог
	SessionID string `json:"sessionId"`
	Message   string `json:"message" binding:"required"`
}

func (c *ChatController) chat(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID := uuid.New()
	if req.SessionID != "" {
		parsed, err := uuid.Parse(req.SessionID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID format"})
			return
		}
		sessionID = parsed
	}

	reply, session, err := c.useCase.Handle(ctx.Request.Context(), sessionID, req.Message)
	if err != nil {
		c.logger.Error("http.chat.handle_failed", out.LogFields{
			"sessionId": sessionID,
			"error":     err.Error(),
		})
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"sessionId": session.ID,
		"response":  reply,
	})
}

func (c *ChatController) sessionHistory(ctx *gin.Context) {
	sessionID, err := uuid.Parse(ctx.Param("sessionId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID format"})
		return
	}

	session, exists := c.useCase.History(ctx.Request.Context(), sessionID)
	if !exists {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"sessionId": session.ID,
		"messages":  session.Messages,
	})
}

func (c *ChatController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
