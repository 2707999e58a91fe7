package calendarlink

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wayfarer-app/wayfarer-backend/internal/tripevent"
	"github.com/wayfarer-app/wayfarer-backend/middleware"
)

// TripAccess is satisfied by the trip service.
type TripAccess interface {
	EnsureCanView(tripID, userID uint) error
}

type Handler struct {
	Events *tripevent.Repository
	Trips  TripAccess
}

func NewHandler(events *tripevent.Repository, trips TripAccess) *Handler {
	return &Handler{Events: events, Trips: trips}
}

// ===========================
// 📅 Calendar Link
func (h *Handler) GetCalendarLink(c *gin.Context) {
	tripID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip id"})
		return
	}
	eventID, err := strconv.ParseUint(c.Param("eventID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	if err := h.Trips.EnsureCanView(uint(tripID), ac.UserID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	event, err := h.Events.GetEventByID(uint(eventID), uint(tripID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}

	link, err := BuildExportURL(event)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": link})
}
