package itinerary

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wayfarer-app/wayfarer-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 📅 Itinerary for the owner
func (h *Handler) GetItinerary(c *gin.Context) {
	tripID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip id"})
		return
	}

	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	layout, err := h.Service.BuildForUser(uint(tripID), ac.UserID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, layout)
}

// ===========================
// 🔗 Itinerary through a share link (no auth)
func (h *Handler) GetSharedItinerary(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing share token"})
		return
	}

	layout, err := h.Service.BuildForShareToken(token)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, layout)
}
