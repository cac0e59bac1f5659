// README: Admin handlers: dashboard aggregates and the user listing.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"swiftlogix/internal/auth"
	"swiftlogix/internal/modules/order"
	"swiftlogix/internal/modules/user"
)

type AdminHandler struct {
	orders *order.Service
	users  *user.Service
}

func NewAdminHandler(orders *order.Service, users *user.Service) *AdminHandler {
	return &AdminHandler{orders: orders, users: users}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	customers, err := h.users.CountByRole(ctx, auth.RoleCustomer)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	drivers, err := h.users.CountByRole(ctx, auth.RoleDriver)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	stats, err := h.orders.Stats(ctx)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"customers":     customers,
		"drivers":       drivers,
		"orders":        stats.Orders,
		"active_orders": stats.ActiveOrders,
		"revenue":       stats.Revenue,
	})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		info := gin.H{
			"id":         u.ID,
			"name":       u.Name,
			"email":      u.Email,
			"role":       u.Role,
			"is_active":  u.IsActive,
			"created_at": u.CreatedAt,
		}
		switch u.Role {
		case auth.RoleCustomer:
			info["total_orders"] = u.TotalOrders
			info["total_spent"] = u.TotalSpent
		case auth.RoleDriver:
			info["is_available"] = u.IsAvailable
		}
		out = append(out, info)
	}
	writeJSON(c, http.StatusOK, out)
}
