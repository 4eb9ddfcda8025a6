package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authsvc "storefront/internal/service/auth"
)

type authHandlers struct {
	svc          AuthService
	cookieMaxAge int
	cookieSecure bool
}

func (h *authHandlers) signup(c *gin.Context) {
	var in authsvc.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond(c, http.StatusBadRequest, nil, "Invalid request body")
		return
	}

	user, token, err := h.svc.Signup(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}

	setAuthCookie(c, token, h.cookieMaxAge, h.cookieSecure)
	respond(c, http.StatusCreated, user, "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *authHandlers) login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respond(c, http.StatusBadRequest, nil, "Invalid request body")
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCredentials) {
			respond(c, http.StatusUnauthorized, nil, "Invalid email or password")
			return
		}
		respondError(c, err, "User not found")
		return
	}

	setAuthCookie(c, token, h.cookieMaxAge, h.cookieSecure)
	respond(c, http.StatusOK, user, "Login successful")
}

func (h *authHandlers) logout(c *gin.Context) {
	clearAuthCookie(c, h.cookieSecure)
	respond(c, http.StatusOK, nil, "Logout successful")
}
