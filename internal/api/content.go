package api

import (
	"net/http"

	"portfolio-api/internal/repository"
	"portfolio-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ContentHandler serves one text section. GET answers {key: entry}, or
// {key: [entries]} when many is set.
type ContentHandler[T repository.Content] struct {
	responder
	svc   *service.ContentService[T]
	label string
	key   string
	many  bool
}

func NewContentHandler[T repository.Content](svc *service.ContentService[T], r responder, label, key string, many bool) *ContentHandler[T] {
	return &ContentHandler[T]{responder: r, svc: svc, label: label, key: key, many: many}
}

func (h *ContentHandler[T]) Register(g *gin.RouterGroup, auth gin.HandlerFunc) {
	g.GET("", h.Get)
	g.POST("", auth, h.Create)
	g.PUT("/:id", auth, h.Update)
	g.DELETE("/:id", auth, h.Delete)
}

func (h *ContentHandler[T]) Get(c *gin.Context) {
	first, err := h.svc.Get(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if !h.many {
		c.JSON(http.StatusOK, gin.H{h.key: first})
		return
	}
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{h.key: rows})
}

func (h *ContentHandler[T]) Create(c *gin.Context) {
	var row T
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}
	id, err := h.svc.Create(c.Request.Context(), &row)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": h.label + " added successfully", "id": id})
}

func (h *ContentHandler[T]) Update(c *gin.Context) {
	var row T
	if err := c.ShouldBindJSON(&row); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}
	if err := h.svc.Update(c.Request.Context(), c.Param("id"), &row); err != nil {
		h.fail(c, err)
		return
	}
	message(c, http.StatusOK, h.label+" updated successfully")
}

func (h *ContentHandler[T]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	message(c, http.StatusOK, h.label+" deleted successfully")
}
