package resumes

import (
	"net/http"

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

// RegisterRoutes mounts the resume endpoints. The group must already be
// behind the auth gate.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/details", h.saveDetails)
	rg.POST("/experience", h.addExperience)
	rg.POST("/education", h.addEducation)
	rg.POST("/skill", h.addSkill)
	rg.POST("/project", h.addProject)

	rg.GET("/resume", h.getResume)
	rg.GET("/resume/generate", h.generate)
	rg.GET("/resume/preview", h.preview)

	rg.DELETE("/experience/:id", h.deleteHandler(SectionExperience))
	rg.DELETE("/education/:id", h.deleteHandler(SectionEducation))
	rg.DELETE("/skill/:id", h.deleteHandler(SectionSkill))
	rg.DELETE("/project/:id", h.deleteHandler(SectionProject))
}

func (h *Handler) saveDetails(c *gin.Context) {
	var in DetailsInput
	if !bind(c, &in) {
		return
	}
	d, err := h.Svc.SaveDetails(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"message": "Details saved successfully!", "details": d})
}

func (h *Handler) addExperience(c *gin.Context) {
	var in ExperienceInput
	if !bind(c, &in) {
		return
	}
	rec, err := h.Svc.AddExperience(c.Request.Context(), middleware.UserIDFromContext(c), in)
	created(c, "Experience added!", rec, err)
}

func (h *Handler) addEducation(c *gin.Context) {
	var in EducationInput
	if !bind(c, &in) {
		return
	}
	rec, err := h.Svc.AddEducation(c.Request.Context(), middleware.UserIDFromContext(c), in)
	created(c, "Education added!", rec, err)
}

func (h *Handler) addSkill(c *gin.Context) {
	var in SkillInput
	if !bind(c, &in) {
		return
	}
	rec, err := h.Svc.AddSkill(c.Request.Context(), middleware.UserIDFromContext(c), in)
	created(c, "Skill added!", rec, err)
}

func (h *Handler) addProject(c *gin.Context) {
	var in ProjectInput
	if !bind(c, &in) {
		return
	}
	rec, err := h.Svc.AddProject(c.Request.Context(), middleware.UserIDFromContext(c), in)
	created(c, "Project added!", rec, err)
}

func (h *Handler) getResume(c *gin.Context) {
	p, err := h.Svc.Profile(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"message": "Resume data fetched!", "data": p})
}

func (h *Handler) generate(c *gin.Context) {
	pdf, err := h.Svc.Generate(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.PDF(c, "", pdf)
}

func (h *Handler) preview(c *gin.Context) {
	html, err := h.Svc.Preview(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *Handler) deleteHandler(section Section) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		c.Set("recordId", id)
		if err := h.Svc.Delete(c.Request.Context(), section, middleware.UserIDFromContext(c), id); err != nil {
			respond.Fail(c, err)
			return
		}
		respond.Message(c, section.label()+" deleted successfully!")
	}
}

func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respond.Fail(c, apperr.Wrap(apperr.ErrValidation, "Request body must be valid JSON.", err))
		return false
	}
	return true
}

func created(c *gin.Context, message string, data any, err error) {
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.Created(c, gin.H{"message": message, "data": data})
}
