package generatedresumes

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/apperr"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resume/generated", h.list)
	rg.GET("/resume/generated/:id/download", h.download)
}

func (h *Handler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"data": items})
}

func (h *Handler) download(c *gin.Context) {
	id := c.Param("id")
	c.Set("recordId", id)
	record, body, err := h.Svc.Open(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	defer body.Close()
	pdf, err := io.ReadAll(body)
	if err != nil {
		respond.Fail(c, apperr.Wrap(apperr.ErrUpstream, "read archived object", err))
		return
	}
	respond.PDF(c, "resume-"+record.CreatedAt.Format("20060102-150405")+".pdf", pdf)
}
