package handler

import (
	"net/http"
	"strings"

	"github.com/MicroblogApp/social-service/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) profilesList(c *gin.Context) {
	usernamePart := c.Query("username")

	profiles, err := h.services.Profile.Search(c.Request.Context(), usernamePart)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}

func (h *Handler) profilesGet(c *gin.Context) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	profile, err := h.services.Profile.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) profilesCreate(c *gin.Context) {
	user := h.getUser(c)

	var input dto.CreateProfileDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	profile, err := h.services.Profile.Create(c.Request.Context(), user.ID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

func (h *Handler) profilesUpdate(c *gin.Context) {
	user := h.getUser(c)

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.Profile.Update(c.Request.Context(), user.ID, id, updates); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) profilesDelete(c *gin.Context) {
	user := h.getUser(c)

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	if err := h.services.Profile.Delete(c.Request.Context(), user.ID, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}
