package handler

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/MicroblogApp/social-service/internal/dto"
	"github.com/MicroblogApp/social-service/internal/model"
	"github.com/MicroblogApp/social-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	accessToken := strings.TrimPrefix(header, "Bearer ")
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	user, err := h.getUserDataFromAccessTokenClaims(c.Request.Context(), accessToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	c.Set("user", *user)

	c.Next()
}

func (h *Handler) getUserDataFromAccessTokenClaims(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		return nil, err
	}

	idString, ok := claims["id"].(string)
	if !ok {
		return nil, errNotAuthorized
	}

	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, err
	}

	user, err := h.services.Auth.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return user, nil
}
