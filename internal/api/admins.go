package api

import (
	"net/http"

	"portfolio-api/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	responder
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService, r responder) *AdminHandler {
	return &AdminHandler{responder: r, svc: svc}
}

type credentialsRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

func (h *AdminHandler) Register(g *gin.RouterGroup, auth gin.HandlerFunc) {
	g.Use(auth)
	g.GET("", h.List)
	g.POST("", h.Add)
	g.PUT("/:account", h.ChangePassword)
	g.DELETE("/:account", h.Delete)
}

func (h *AdminHandler) List(c *gin.Context) {
	admins, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, admins)
}

func (h *AdminHandler) Add(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}
	if err := h.svc.Add(c.Request.Context(), req.Account, req.Password); err != nil {
		h.fail(c, err)
		return
	}
	message(c, http.StatusCreated, "Admin added successfully")
}

func (h *AdminHandler) ChangePassword(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), c.Param("account"), req.Password); err != nil {
		h.fail(c, err)
		return
	}
	message(c, http.StatusOK, "Password updated successfully")
}

func (h *AdminHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("account")); err != nil {
		h.fail(c, err)
		return
	}
	message(c, http.StatusOK, "Admin deleted successfully")
}

type AuthHandler struct {
	responder
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService, r responder) *AuthHandler {
	return &AuthHandler{responder: r, svc: svc}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide both account and password"})
		return
	}
	session, err := h.svc.Login(c.Request.Context(), req.Account, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Login successful",
		"identity":  "admin",
		"account":   session.Account,
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
	})
}

// Me returns the account the session token belongs to.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"account": c.GetString(accountKey)})
}
