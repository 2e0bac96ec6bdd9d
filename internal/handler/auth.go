package handler

import (
	"net/http"

	"github.com/MicroblogApp/social-service/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func (h *Handler) authSignUp(c *gin.Context) {
	var input dto.CreateUserDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	tokenPair, err := h.services.Auth.SignUp(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.SetCookie("refresh_token", tokenPair.RefreshToken, int(tokenPair.RefreshTokenExp.Seconds()), "/", viper.GetString("client.domain"), true, true)

	c.JSON(http.StatusCreated, dto.AuthResponse{Ok: true, AccessToken: tokenPair.AccessToken})
}

func (h *Handler) authSignIn(c *gin.Context) {
	var input dto.SignInDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	tokenPair, err := h.services.Auth.SignIn(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.SetCookie("refresh_token", tokenPair.RefreshToken, int(tokenPair.RefreshTokenExp.Seconds()), "/", viper.GetString("client.domain"), true, true)

	c.JSON(http.StatusOK, dto.AuthResponse{Ok: true, AccessToken: tokenPair.AccessToken})
}

func (h *Handler) authRefresh(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	tokenPair, err := h.services.Auth.RefreshTokens(c.Request.Context(), refreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.SetCookie("refresh_token", tokenPair.RefreshToken, int(tokenPair.RefreshTokenExp.Seconds()), "/", viper.GetString("client.domain"), true, true)

	c.JSON(http.StatusOK, dto.RefreshResponse{Ok: true, AccessToken: tokenPair.AccessToken})
}

// authLogout terminates the session named by the refresh token in the body.
// Every failure, including a malformed body, is the same bare 400: the
// response never says what went wrong with the token.
func (h *Handler) authLogout(c *gin.Context) {
	var input dto.RefreshTokenDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, ""))
		return
	}

	if err := h.services.Auth.Logout(c.Request.Context(), input.RefreshToken); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, ""))
		return
	}

	c.Status(http.StatusNoContent)
}
