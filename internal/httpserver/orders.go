package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type orderHandlers struct {
	svc OrderService
}

type checkoutRequest struct {
	Address string `json:"address"`
}

func (h *orderHandlers) checkout(c *gin.Context) {
	if !requireCustomer(c, "Only users can checkout") {
		return
	}
	var in checkoutRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respond(c, http.StatusBadRequest, nil, "Invalid request body")
		return
	}

	order, err := h.svc.Checkout(c.Request.Context(), callerID(c), in.Address)
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}
	respond(c, http.StatusCreated, order, "Order placed successfully")
}

func (h *orderHandlers) listMine(c *gin.Context) {
	orders, err := h.svc.ListMine(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err, "Orders not found")
		return
	}
	respond(c, http.StatusOK, orders, "Orders fetched successfully")
}

func (h *orderHandlers) cancel(c *gin.Context) {
	order, err := h.svc.Cancel(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Order not found")
		return
	}
	respond(c, http.StatusOK, order, "Order cancelled successfully")
}

func (h *orderHandlers) listAll(c *gin.Context) {
	orders, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Orders not found")
		return
	}
	respond(c, http.StatusOK, orders, "All orders fetched successfully")
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *orderHandlers) updateStatus(c *gin.Context) {
	var in updateStatusRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respond(c, http.StatusBadRequest, nil, "Invalid request body")
		return
	}

	order, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status)
	if err != nil {
		respondError(c, err, "Order not found")
		return
	}
	respond(c, http.StatusOK, order, "Order status updated successfully")
}

func (h *orderHandlers) userExpenses(c *gin.Context) {
	userID := c.Param("userId")
	total, err := h.svc.UserExpenses(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}
	respond(c, http.StatusOK, gin.H{"userId": userID, "totalCents": total}, "User expenses fetched successfully")
}
