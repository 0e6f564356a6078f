// Package rest exposes the step-tracking API over HTTP/JSON. Routes and
// body shapes mirror the mobile client's expectations: auth endpoints
// return {token, user}, step endpoints return {stepData}, {totalSteps} and
// {weeklyData}.
package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/steptrack/internal/common"
	"github.com/dmitrijs2005/steptrack/internal/logging"
	"github.com/dmitrijs2005/steptrack/internal/server/steps"
	"github.com/dmitrijs2005/steptrack/internal/server/users"
)

type Handler struct {
	userService *users.Service
	stepService *steps.Service
	logger      logging.Logger
}

func NewHandler(userService *users.Service, stepService *steps.Service, logger logging.Logger) *Handler {
	return &Handler{
		userService: userService,
		stepService: stepService,
		logger:      logger.With("component", "rest"),
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type addStepsRequest struct {
	// pointer so that a missing field is distinguishable from zero
	Steps *int `json:"steps" binding:"required"`
}

func toUserPayload(u *users.User) userPayload {
	return userPayload{ID: u.ID, Name: u.Name, Email: u.Email}
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrDuplicateEmail):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := errStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err.Error())
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.userService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{Token: res.Token, User: toUserPayload(res.User)})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: res.Token, User: toUserPayload(res.User)})
}

func (h *Handler) ListSteps(c *gin.Context) {
	userID := c.GetString(userIDKey)

	entries, err := h.stepService.List(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stepData": entries})
}

func (h *Handler) AddSteps(c *gin.Context) {
	userID := c.GetString(userIDKey)

	var req addStepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.stepService.Add(c.Request.Context(), userID, *req.Steps)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) DailySteps(c *gin.Context) {
	userID := c.GetString(userIDKey)

	total, err := h.stepService.DailyTotal(c.Request.Context(), userID, h.stepService.Today())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"totalSteps": total})
}

func (h *Handler) WeeklySteps(c *gin.Context) {
	userID := c.GetString(userIDKey)

	totals, err := h.stepService.WeeklyTotals(c.Request.Context(), userID, h.stepService.Today())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"weeklyData": totals})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
