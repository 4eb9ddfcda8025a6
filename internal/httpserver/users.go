package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	usersvc "storefront/internal/service/user"
)

type userHandlers struct {
	svc UserService
}

func (h *userHandlers) list(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "No users found")
		return
	}
	respond(c, http.StatusOK, users, "Users retrieved successfully")
}

func (h *userHandlers) me(c *gin.Context) {
	user, err := h.svc.Get(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err, "User not found")
		return
	}
	respond(c, http.StatusOK, user, "User retrieved successfully")
}

func (h *userHandlers) updateMe(c *gin.Context) {
	var in usersvc.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond(c, http.StatusBadRequest, nil, "Invalid request body")
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), callerID(c), in)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}
	respond(c, http.StatusOK, user, "User updated successfully")
}

func (h *userHandlers) get(c *gin.Context) {
	user, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "User not found")
		return
	}
	respond(c, http.StatusOK, user, "User retrieved successfully")
}

func (h *userHandlers) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, usersvc.ErrCannotDeleteAdmin) {
			respond(c, http.StatusForbidden, nil, "Cannot delete admin user")
			return
		}
		respondError(c, err, "User not found")
		return
	}
	respond(c, http.StatusOK, nil, "User deleted successfully")
}
