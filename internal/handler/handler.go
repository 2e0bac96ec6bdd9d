package handler

import (
	"github.com/MicroblogApp/social-service/internal/model"
	"github.com/MicroblogApp/social-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{viper.GetString("client.origin")},
		AllowMethods: []string{"POST", "GET", "PATCH", "DELETE"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/sign-up", h.authSignUp)
			auth.POST("/sign-in", h.authSignIn)
			auth.POST("/refresh", h.authRefresh)
			auth.POST("/logout", h.authMiddleware, h.authLogout)
		}

		profiles := v1.Group("/profiles")
		{
			profiles.GET("", h.profilesList)
			profiles.GET("/:id", h.profilesGet)
			profiles.POST("", h.authMiddleware, h.profilesCreate)
			profiles.PATCH("/:id", h.authMiddleware, h.profilesUpdate)
			profiles.DELETE("/:id", h.authMiddleware, h.profilesDelete)
		}

		subscriptions := v1.Group("/subscriptions")
		{
			subscriptions.Use(h.authMiddleware)

			subscriptions.GET("", h.subscriptionsList)
			subscriptions.POST("", h.subscriptionsCreate)
			subscriptions.DELETE("/:id", h.subscriptionsDelete)
		}

		subscribers := v1.Group("/subscribers")
		{
			subscribers.Use(h.authMiddleware)

			subscribers.GET("", h.subscribersList)
			subscribers.POST("", h.subscribersCreate)
			subscribers.DELETE("/:id", h.subscribersDelete)
		}

		posts := v1.Group("/posts")
		{
			posts.Use(h.authMiddleware)

			posts.GET("", h.postsList)
			posts.GET("/:id", h.postsGet)
			posts.POST("", h.postsCreate)
			posts.PATCH("/:id", h.postsUpdate)
			posts.DELETE("/:id", h.postsDelete)
		}
	}

	return r
}

func (h *Handler) getUser(c *gin.Context) *model.User {
	userReq, _ := c.Get("user")

	user, ok := userReq.(model.User)
	if !ok {
		return nil
	}

	return &user
}
