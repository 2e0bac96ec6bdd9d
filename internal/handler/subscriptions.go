package handler

import (
	"net/http"
	"strings"

	"github.com/MicroblogApp/social-service/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) subscriptionsList(c *gin.Context) {
	user := h.getUser(c)

	subs, err := h.services.Subscription.Subscriptions(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subs)
}

func (h *Handler) subscriptionsCreate(c *gin.Context) {
	user := h.getUser(c)

	var input dto.SubscribeDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	targetID, err := uuid.Parse(input.TargetID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	sub, err := h.services.Subscription.Subscribe(c.Request.Context(), user.ID, targetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

func (h *Handler) subscriptionsDelete(c *gin.Context) {
	user := h.getUser(c)

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	if err := h.services.Subscription.Unsubscribe(c.Request.Context(), user.ID, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) subscribersList(c *gin.Context) {
	user := h.getUser(c)

	subs, err := h.services.Subscription.Subscribers(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subs)
}

func (h *Handler) subscribersCreate(c *gin.Context) {
	user := h.getUser(c)

	var input dto.AddSubscriberDto
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	subscriberID, err := uuid.Parse(input.SubscriberID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	sub, err := h.services.Subscription.Subscribe(c.Request.Context(), subscriberID, user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

func (h *Handler) subscribersDelete(c *gin.Context) {
	user := h.getUser(c)

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	if err := h.services.Subscription.RemoveSubscriber(c.Request.Context(), user.ID, id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}
