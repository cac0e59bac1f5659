// README: Driver-facing handlers: available orders, accept, status, location, earnings.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"swiftlogix/internal/http/middleware"
	"swiftlogix/internal/modules/location"
	"swiftlogix/internal/modules/order"
	"swiftlogix/internal/modules/user"
	"swiftlogix/internal/types"
)

type DriverHandler struct {
	orders    *order.Service
	users     *user.Service
	locations *location.Service
}

func NewDriverHandler(orders *order.Service, users *user.Service, locations *location.Service) *DriverHandler {
	return &DriverHandler{orders: orders, users: users, locations: locations}
}

func (h *DriverHandler) Available(c *gin.Context) {
	orders, err := h.orders.ListAvailable(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	out := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		out = append(out, gin.H{
			"id":           o.ID,
			"pickup":       gin.H{"lat": o.Pickup.Lat, "lng": o.Pickup.Lng, "address": o.PickupAddress},
			"drop":         gin.H{"lat": o.Drop.Lat, "lng": o.Drop.Lng, "address": o.DropAddress},
			"material":     o.MaterialType,
			"weight_kg":    o.WeightKg,
			"distance_km":  o.Fare.DistanceKm,
			"driver_share": o.Fare.DriverShare,
		})
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *DriverHandler) Accept(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)
	o, err := h.orders.Accept(c.Request.Context(), order.AcceptCommand{
		OrderID:  types.ID(c.Param("id")),
		DriverID: identity.UserID,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, orderSummary(o))
}

type updateStatusReq struct {
	Status string `json:"status"`
}

func (h *DriverHandler) UpdateStatus(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	status, ok := order.ParseStatus(req.Status)
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid status")
		return
	}
	o, err := h.orders.UpdateStatus(c.Request.Context(), types.ID(c.Param("id")), identity, status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, orderSummary(o))
}

type updateLocationReq struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (h *DriverHandler) UpdateLocation(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)
	var req updateLocationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.locations.Update(c.Request.Context(), identity.UserID, types.Point{Lat: req.Lat, Lng: req.Lng})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"message": "location updated"})
}

type availabilityReq struct {
	Available bool `json:"available"`
}

func (h *DriverHandler) SetAvailability(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)
	var req availabilityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.users.SetAvailability(c.Request.Context(), identity.UserID, req.Available); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"available": req.Available})
}

func (h *DriverHandler) Earnings(c *gin.Context) {
	identity, _ := middleware.CallerIdentity(c)
	e, err := h.orders.DriverEarnings(c.Request.Context(), identity.UserID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"delivered_count": e.DeliveredCount,
		"total_earnings":  e.Total,
	})
}
