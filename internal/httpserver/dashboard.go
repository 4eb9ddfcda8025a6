package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type dashboardHandlers struct {
	svc DashboardService
}

func (h *dashboardHandlers) get(c *gin.Context) {
	data, err := h.svc.Fetch(c.Request.Context())
	if err != nil {
		respondError(c, err, "Dashboard data not found")
		return
	}
	respond(c, http.StatusOK, data, "Admin dashboard data fetched successfully")
}
