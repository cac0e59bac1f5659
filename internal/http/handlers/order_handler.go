// README: Customer-facing order handlers: create, list, track, cancel.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"swiftlogix/internal/auth"
	"swiftlogix/internal/http/middleware"
	"swiftlogix/internal/modules/location"
	"swiftlogix/internal/modules/order"
	"swiftlogix/internal/types"
)

type OrderHandler struct {
	orders    *order.Service
	locations *location.Service
}

func NewOrderHandler(orders *order.Service, locations *location.Service) *OrderHandler {
	return &OrderHandler{orders: orders, locations: locations}
}

type createOrderReq struct {
	PickupAddress string  `json:"pickup_address"`
	PickupLat     float64 `json:"pickup_lat"`
	PickupLng     float64 `json:"pickup_lng"`
	DropAddress   string  `json:"drop_address"`
	DropLat       float64 `json:"drop_lat"`
	DropLng       float64 `json:"drop_lng"`
	MaterialType  string  `json:"material_type"`
	WeightKg      float64 `json:"weight_kg"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	o, err := h.orders.Create(c.Request.Context(), order.CreateCommand{
		CustomerID:    identity.UserID,
		PickupAddress: req.PickupAddress,
		Pickup:        types.Point{Lat: req.PickupLat, Lng: req.PickupLng},
		DropAddress:   req.DropAddress,
		Drop:          types.Point{Lat: req.DropLat, Lng: req.DropLng},
		MaterialType:  req.MaterialType,
		WeightKg:      req.WeightKg,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{
		"order_id":    o.ID,
		"status":      o.Status,
		"distance_km": o.Fare.DistanceKm,
		"fare_total":  o.Fare.Total,
	})
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)
	orders, err := h.orders.ListByCustomer(c.Request.Context(), identity.UserID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderSummary(o))
	}
	writeJSON(c, http.StatusOK, out)
}

// Track returns the order status and, once a driver is on it, the driver's
// last reported position.
func (h *OrderHandler) Track(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)
	o, err := h.orders.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if identity.Role != auth.RoleAdmin && o.CustomerID != identity.UserID {
		writeError(c, http.StatusForbidden, "forbidden")
		return
	}
	resp := gin.H{"status": o.Status, "driver": nil}
	if o.DriverID != nil {
		driver := gin.H{"id": *o.DriverID}
		if p, ok, err := h.locations.Last(c.Request.Context(), *o.DriverID); err == nil && ok {
			driver["lat"] = p.Lat
			driver["lng"] = p.Lng
		}
		resp["driver"] = driver
	}
	writeJSON(c, http.StatusOK, resp)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)
	o, err := h.orders.Cancel(c.Request.Context(), types.ID(c.Param("id")), identity)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, orderSummary(o))
}

func orderSummary(o *order.Order) gin.H {
	return gin.H{
		"id":          o.ID,
		"status":      o.Status,
		"driver_id":   o.DriverID,
		"distance_km": o.Fare.DistanceKm,
		"fare_total":  o.Fare.Total,
		"created_at":  o.CreatedAt,
	}
}
