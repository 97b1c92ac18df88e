package api

import (
	"net/http"

	"portfolio-api/internal/logger"
	"portfolio-api/internal/models"
	"portfolio-api/internal/service"
	"portfolio-api/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps is everything the router serves.
type Deps struct {
	Projects        *service.ProjectService
	Professionals   *service.ProfessionalService
	Slides          *service.SlideService
	HomeWords       *service.ContentService[models.HomeWord]
	ExperienceWords *service.ContentService[models.ExperienceWord]
	About           *service.ContentService[models.About]
	Contact         *service.ContentService[models.Contact]
	Admins          *service.AdminService
	Auth            *service.AuthService

	Hub     *ws.Hub         // optional
	Uploads http.FileSystem // optional; served under /uploads

	MaxFiles    int
	DebugErrors bool
	Log         *zap.SugaredLogger
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(d.Log), logger.GinMiddleware(d.Log), CORS())
	r.MaxMultipartMemory = 32 << 20

	resp := responder{log: d.Log.Named("api"), debug: d.DebugErrors}
	auth := RequireAdmin(d.Auth, resp)

	if d.Uploads != nil {
		r.StaticFS("/uploads", d.Uploads)
	}

	apiGroup := r.Group("/api")
	{
		NewProjectHandler(d.Projects, resp, d.MaxFiles).Register(apiGroup.Group("/projects"), auth)
		NewProfessionalHandler(d.Professionals, resp, d.MaxFiles).Register(apiGroup.Group("/professionals"), auth)

		slides := NewSlideHandler(d.Slides, resp, d.MaxFiles)
		slides.Register(apiGroup.Group("/slides"), auth)
		slides.Register(apiGroup.Group("/slide"), auth)

		NewContentHandler(d.HomeWords, resp, "Home word", "words", false).Register(apiGroup.Group("/homewords"), auth)
		NewContentHandler(d.ExperienceWords, resp, "Experience word", "words", false).Register(apiGroup.Group("/experiencewords"), auth)
		NewContentHandler(d.About, resp, "About entry", "about", false).Register(apiGroup.Group("/about"), auth)
		NewContentHandler(d.Contact, resp, "Contact entry", "contact", true).Register(apiGroup.Group("/contact"), auth)

		NewAdminHandler(d.Admins, resp).Register(apiGroup.Group("/admins"), auth)

		authHandler := NewAuthHandler(d.Auth, resp)
		apiGroup.POST("/auth/login", authHandler.Login)
		apiGroup.GET("/auth/me", auth, authHandler.Me)

		if d.Hub != nil {
			apiGroup.GET("/ws", gin.WrapF(d.Hub.ServeWs))
		}
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
