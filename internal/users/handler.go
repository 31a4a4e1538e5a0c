package users

import (
	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/apperr"
	"resume-builder/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes mounts the unauthenticated account endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
}

func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, apperr.Wrap(apperr.ErrValidation, "Email and password are required.", err))
		return
	}
	user, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.Created(c, gin.H{
		"message": "User created successfully!",
		"user":    user,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, apperr.Wrap(apperr.ErrValidation, "Email and password are required.", err))
		return
	}
	token, err := h.Svc.Login(c.Request.Context(), req)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{
		"message": "Login successful!",
		"token":   token,
	})
}
