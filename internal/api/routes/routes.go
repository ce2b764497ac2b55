package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/neuralease/neuralease/internal/api/handlers"
	"github.com/neuralease/neuralease/internal/api/middleware"
	"github.com/neuralease/neuralease/internal/auth"
)

type Deps struct {
	Tokens       *auth.Issuer
	Auth         *handlers.AuthHandler
	Conversation *handlers.ConversationHandler
	Chat         *handlers.ChatHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/auth/register", d.Auth.Register)
	r.POST("/auth/login", d.Auth.Login)

	// Protected routes (JWT)
	protected := r.Group("/")
	protected.Use(middleware.JWTAuth(d.Tokens))

	protected.GET("/account/me", d.Auth.Me)
	protected.PUT("/account/preferences", d.Auth.UpdatePreferences)

	protected.POST("/conversations", d.Conversation.Create)
	protected.GET("/conversations", d.Conversation.List)
	protected.GET("/conversations/:conversation_id", d.Conversation.Get)
	protected.PUT("/conversations/:conversation_id/title", d.Conversation.Rename)
	protected.PUT("/conversations/:conversation_id/consent", d.Conversation.SetConsent)
	protected.DELETE("/conversations/:conversation_id", d.Conversation.Delete)

	protected.POST("/conversations/:conversation_id/messages", d.Chat.Send)
	protected.PUT("/conversations/:conversation_id/messages/:message_id", d.Chat.Edit)
	protected.DELETE("/conversations/:conversation_id/messages/:message_id", d.Chat.Delete)
}
