package http

import (
	"errors"
	"io"
	"net/http"

	"canteen-service/internal/domain"
	"canteen-service/internal/notify"
	"canteen-service/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	orders *services.OrderService
	menu   *services.MenuService
	hub    *notify.Hub
}

func NewHandler(orders *services.OrderService, menu *services.MenuService, hub *notify.Hub) *Handler {
	return &Handler{orders: orders, menu: menu, hub: hub}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/orders", h.SubmitOrder)
	r.GET("/orders/active", h.GetActiveOrders)
	r.GET("/orders/user/:userId", h.GetUserOrders)
	r.GET("/orders/stream", h.StreamActiveOrders)
	r.GET("/orders/user/:userId/stream", h.StreamUserOrders)
	r.GET("/orders/:id", h.GetOrder)
	r.GET("/orders/:id/stream", h.StreamOrder)
	r.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	r.POST("/orders/:id/receipt", h.CreateReceipt)
	r.GET("/orders/:id/receipt", h.GetReceipt)

	r.GET("/menu", h.ListMenu)
	r.POST("/menu", h.CreateMenuItem)
	r.PUT("/menu/:id", h.UpdateMenuItem)
	r.DELETE("/menu/:id", h.DeleteMenuItem)
}

// sessionFrom reads the caller identity resolved by the auth gateway.
func sessionFrom(c *gin.Context) (domain.Session, bool) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		return domain.Session{}, false
	}
	role := domain.Role(c.GetHeader("X-User-Role"))
	if role != domain.RoleStaff {
		role = domain.RoleCustomer
	}
	return domain.Session{UserID: userID, Role: role}, true
}

func writeError(c *gin.Context, err error) {
	var (
		allocErr      *domain.AllocationError
		persistErr    *domain.PersistenceError
		transitionErr *domain.InvalidTransitionError
		priceErr      *domain.PriceOutOfRangeError
	)

	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrMenuItemNotFound),
		errors.Is(err, domain.ErrReceiptNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUpdateInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &allocErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.As(err, &persistErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	case errors.As(err, &priceErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func (h *Handler) SubmitOrder(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.Submit(
		c.Request.Context(),
		session,
		req.Cart(),
		domain.OrderType(req.OrderType),
		req.PickupTime,
		domain.PaymentMethod(req.PaymentMethod),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.orders.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) GetUserOrders(c *gin.Context) {
	orders, err := h.orders.GetUserOrders(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetActiveOrders(c *gin.Context) {
	orders, err := h.orders.GetActiveOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.AdvanceStatus(c.Request.Context(), session, c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// StreamActiveOrders streams the staff queue over SSE: one event with
// the full active list per change, an initial snapshot first.
func (h *Handler) StreamActiveOrders(c *gin.Context) {
	ch, unsubscribe := h.hub.SubscribeActive()
	defer unsubscribe()

	initial, err := h.orders.GetActiveOrders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.SSEvent("orders", initial)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case orders, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent("orders", orders)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (h *Handler) StreamUserOrders(c *gin.Context) {
	userID := c.Param("userId")
	ch, unsubscribe := h.hub.SubscribeUser(userID)
	defer unsubscribe()

	initial, err := h.orders.GetUserOrders(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.SSEvent("orders", initial)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case orders, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent("orders", orders)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (h *Handler) StreamOrder(c *gin.Context) {
	orderID := c.Param("id")
	ch, unsubscribe := h.hub.SubscribeOrder(orderID)
	defer unsubscribe()

	initial, err := h.orders.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.SSEvent("order", initial)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case order, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent("order", order)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (h *Handler) CreateReceipt(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	receipt, err := h.orders.CreateReceipt(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

func (h *Handler) GetReceipt(c *gin.Context) {
	receipt, err := h.orders.GetReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func (h *Handler) ListMenu(c *gin.Context) {
	availableOnly := c.Query("available") == "true"
	items, err := h.menu.List(c.Request.Context(), availableOnly)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateMenuItem(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.menu.Create(c.Request.Context(), session, domain.MenuItem{
		Name:        req.Name,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsVeg:       req.IsVeg,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateMenuItem(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.menu.Update(c.Request.Context(), session, domain.MenuItem{
		ID:          c.Param("id"),
		Name:        req.Name,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsVeg:       req.IsVeg,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteMenuItem(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	if err := h.menu.Delete(c.Request.Context(), session, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
