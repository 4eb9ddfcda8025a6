package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type cartHandlers struct {
	svc CartService
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *cartHandlers) add(c *gin.Context) {
	if !requireCustomer(c, "Only users can add to cart") {
		return
	}
	var in addToCartRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respond(c, http.StatusBadRequest, nil, "Invalid request body")
		return
	}

	cart, err := h.svc.Add(c.Request.Context(), callerID(c), in.ProductID, in.Quantity)
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}
	respond(c, http.StatusOK, cart, "Product added to cart")
}

func (h *cartHandlers) get(c *gin.Context) {
	if !requireCustomer(c, "Only users can view cart") {
		return
	}
	cart, err := h.svc.Get(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err, "Cart not found")
		return
	}
	respond(c, http.StatusOK, cart, "Cart fetched successfully")
}

func (h *cartHandlers) remove(c *gin.Context) {
	if !requireCustomer(c, "Only users can remove from cart") {
		return
	}
	cart, err := h.svc.Remove(c.Request.Context(), callerID(c), c.Param("productId"))
	if err != nil {
		respondError(c, err, "Cart not found")
		return
	}
	respond(c, http.StatusOK, cart, "Product removed from cart")
}
