package handler

import (
	"errors"
	"net/http"

	"github.com/MicroblogApp/social-service/internal/dto"
	"github.com/MicroblogApp/social-service/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized = errors.New("user is not authorized")
	errInvalidID = errors.New("provided an invalid ID")
)

// respondServiceError keeps the error vocabularies per resource: validation
// failures are 400, missing-or-hidden rows are 404, ownership failures are
// 403, everything unexpected is an opaque 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrSubscriptionNotFound),
		errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewBasicResponse(false, err.Error()))
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, err.Error()))
	case errors.Is(err, service.ErrUserWithEmailAlreadyExists),
		errors.Is(err, service.ErrProfileAlreadyExists),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrUsernameCannotContainSpecialCharacters),
		errors.Is(err, service.ErrAlreadySubscribed),
		errors.Is(err, service.ErrSelfSubscription),
		errors.Is(err, service.ErrTargetNotFound):
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, service.ErrInternal.Error()))
	}
}
