package handler

import (
	"net/http"
	"strings"

	"github.com/MicroblogApp/social-service/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) postsList(c *gin.Context) {
	user := h.getUser(c)

	messagePart := c.Query("message")

	posts, err := h.services.Post.Feed(c.Request.Context(), user.ID, messagePart)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsGet(c *gin.Context) {
	user := h.getUser(c)

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	post, err := h.services.Post.GetByID(c.Request.Context(), user.ID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getUser(c)

	var input dto.CreatePostDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	post, err := h.services.Post.Create(c.Request.Context(), user.ID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *Handler) postsUpdate(c *gin.Context) {
	user := h.getUser(c)

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	var input dto.UpdatePostDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	post, err := h.services.Post.Update(c.Request.Context(), user.ID, id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) postsDelete(c *gin.Context) {
	user := h.getUser(c)

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	if err := h.services.Post.Delete(c.Request.Context(), user.ID, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}
