package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/icloudnotebook/notebook-backend/internal/handler"
	"github.com/icloudnotebook/notebook-backend/internal/middleware"
	"github.com/icloudnotebook/notebook-backend/pkg/jwt"
)

// SetupAuth configures authentication routes
func SetupAuth(router *gin.Engine, h *handler.AuthHandler, jwtManager *jwt.Manager) {
	authGroup := router.Group("/api/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.POST("/refresh", h.RefreshToken)
	authGroup.POST("/logout", h.Logout)
	authGroup.GET("/me", middleware.JWTAuth(jwtManager), h.GetMe)
}

// SetupNotes configures note routes. Every route runs behind the JWT gate.
func SetupNotes(router *gin.Engine, h *handler.NoteHandler, jwtManager *jwt.Manager) {
	notes := router.Group("/api/notes", middleware.JWTAuth(jwtManager))
	notes.GET("", h.ListNotes)
	notes.POST("", h.CreateNote)
	notes.GET("/:id", h.GetNote)
	notes.PUT("/:id", h.UpdateNote)
	notes.DELETE("/:id", h.DeleteNote)
}
