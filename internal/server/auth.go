package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/replenix/replenix/internal/actorcontext"
	authdomain "github.com/replenix/replenix/internal/auth/domain"
)

type registerRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	CompanyName string `json:"companyName"`
	ContactInfo string `json:"contactInfo"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.authsvc.Register(c.Request.Context(), authdomain.RegisterRequest{
		Username:    strings.TrimSpace(req.Username),
		Password:    req.Password,
		Role:        actorcontext.Role(strings.TrimSpace(req.Role)),
		CompanyName: req.CompanyName,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"username": result.Username,
		"role":     result.Role,
	})
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	username := strings.TrimSpace(req.Username)
	if !s.loginLimiter.Allow(c.Request.Context(), username, c.ClientIP()) {
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Username:  username,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)

	c.JSON(http.StatusOK, gin.H{
		"username":   result.Username,
		"role":       result.Actor.Role,
		"supplierId": supplierIDString(result.Actor),
	})
}

func (s *Server) Logout(c *gin.Context) {
	if token, ok := s.sessions.ReadToken(c); ok {
		if err := s.authsvc.Logout(c.Request.Context(), token); err != nil {
			AbortWithError(c, err)
			return
		}
	}
	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Me(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":     actor.UserID.String(),
		"role":       actor.Role,
		"supplierId": supplierIDString(actor),
	})
}

func supplierIDString(actor actorcontext.Actor) string {
	if actor.SupplierID == 0 {
		return ""
	}
	return actor.SupplierID.String()
}
