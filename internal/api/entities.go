package api

import (
	"context"
	"net/http"

	"portfolio-api/internal/models"
	"portfolio-api/internal/service"
	"portfolio-api/internal/storage"
	pkgmodels "portfolio-api/pkg/models"

	"github.com/gin-gonic/gin"
)

// entityService is what EntityHandler needs from a media service.
type entityService[T, S, F any] interface {
	Add(ctx context.Context, f F, uploads []storage.Upload) (string, error)
	Update(ctx context.Context, id string, f F, kept []string, uploads []storage.Upload) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context) ([]T, error)
	Summaries(ctx context.Context) ([]S, error)
}

// EntityHandler serves one media-backed collection.
type EntityHandler[T, S, F any] struct {
	responder
	svc        entityService[T, S, F]
	label      string
	listKey    string // wraps the list response when set
	fileFields []string
	maxFiles   int
	fields     func(*entityInput) F
}

func NewProjectHandler(svc *service.ProjectService, r responder, maxFiles int) *EntityHandler[models.Project, pkgmodels.ProjectSummary, service.ProjectFields] {
	return &EntityHandler[models.Project, pkgmodels.ProjectSummary, service.ProjectFields]{
		responder:  r,
		svc:        svc,
		label:      "Project",
		fileFields: []string{"media"},
		maxFiles:   maxFiles,
		fields: func(in *entityInput) service.ProjectFields {
			return service.ProjectFields{
				ID:          in.ID,
				Title:       in.Title,
				StartTime:   in.StartTime,
				EndTime:     in.EndTime,
				Skills:      in.Skills,
				Link:        in.Link,
				Description: in.Description,
			}
		},
	}
}

func NewProfessionalHandler(svc *service.ProfessionalService, r responder, maxFiles int) *EntityHandler[models.Professional, pkgmodels.ProfessionalSummary, service.ProfessionalFields] {
	return &EntityHandler[models.Professional, pkgmodels.ProfessionalSummary, service.ProfessionalFields]{
		responder:  r,
		svc:        svc,
		label:      "Professional",
		fileFields: []string{"media"},
		maxFiles:   maxFiles,
		fields: func(in *entityInput) service.ProfessionalFields {
			return service.ProfessionalFields{
				ID:          in.ID,
				Title:       in.Title,
				StartTime:   in.StartTime,
				EndTime:     in.EndTime,
				Skills:      in.Skills,
				Company:     in.Company,
				Description: in.Description,
			}
		},
	}
}

// NewSlideHandler accepts files under "media" and under "file", the field
// older clients send.
func NewSlideHandler(svc *service.SlideService, r responder, maxFiles int) *EntityHandler[models.Slide, pkgmodels.SlideSummary, service.SlideFields] {
	return &EntityHandler[models.Slide, pkgmodels.SlideSummary, service.SlideFields]{
		responder:  r,
		svc:        svc,
		label:      "Slide",
		listKey:    "pictures",
		fileFields: []string{"media", "file"},
		maxFiles:   maxFiles,
		fields: func(in *entityInput) service.SlideFields {
			return service.SlideFields{ID: in.ID, Title: in.Title, Caption: in.Caption}
		},
	}
}

// Register mounts the collection on g.
func (h *EntityHandler[T, S, F]) Register(g *gin.RouterGroup, auth gin.HandlerFunc) {
	g.GET("", h.List)
	g.GET("/summaries", h.Summaries)
	g.GET("/:id", h.Get)
	g.POST("", auth, h.Add)
	g.PUT("/:id", auth, h.Update)
	g.DELETE("/:id", auth, h.Delete)
}

func (h *EntityHandler[T, S, F]) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if h.listKey != "" {
		c.JSON(http.StatusOK, gin.H{h.listKey: rows})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *EntityHandler[T, S, F]) Summaries(c *gin.Context) {
	rows, err := h.svc.Summaries(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *EntityHandler[T, S, F]) Get(c *gin.Context) {
	row, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *EntityHandler[T, S, F]) Add(c *gin.Context) {
	in, err := readEntityInput(c, h.maxFiles, h.fileFields...)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer in.Close()

	id, err := h.svc.Add(c.Request.Context(), h.fields(in), in.Uploads)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": h.label + " added successfully", "id": id})
}

func (h *EntityHandler[T, S, F]) Update(c *gin.Context) {
	in, err := readEntityInput(c, h.maxFiles, h.fileFields...)
	if err != nil {
		h.fail(c, err)
		return
	}
	defer in.Close()

	if err := h.svc.Update(c.Request.Context(), c.Param("id"), h.fields(in), in.Kept, in.Uploads); err != nil {
		h.fail(c, err)
		return
	}
	message(c, http.StatusOK, h.label+" updated successfully")
}

func (h *EntityHandler[T, S, F]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	message(c, http.StatusOK, h.label+" deleted successfully")
}
