package trip

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

func accessContextOrAbort(c *gin.Context) (middleware.AccessContext, bool) {
	ac, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
	}
	return ac, ok
}

func tripIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip id"})
		return 0, false
	}
	return uint(id), true
}

// ===========================
// 🎯 Create Trip
func (h *Handler) CreateTrip(c *gin.Context) {
	ac, ok := accessContextOrAbort(c)
	if !ok {
		return
	}

	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.Service.CreateTrip(&req, ac, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, t)
}

// ===========================
// 📄 List Trips
func (h *Handler) ListTrips(c *gin.Context) {
	ac, ok := accessContextOrAbort(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	trips, err := h.Service.ListTrips(ac.UserID, limit, (page-1)*limit, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch trips"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trips": trips, "page": page, "limit": limit})
}

// ===========================
// 🔍 Get Trip
func (h *Handler) GetTrip(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	ac, ok := accessContextOrAbort(c)
	if !ok {
		return
	}

	t, err := h.Service.GetTrip(id, ac.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, t)
}

// ===========================
// 🛠 Update Trip
func (h *Handler) UpdateTrip(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	ac, ok := accessContextOrAbort(c)
	if !ok {
		return
	}

	var req UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = id

	t, err := h.Service.UpdateTrip(&req, ac, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, t)
}

// ===========================
// ❌ Delete Trip
func (h *Handler) DeleteTrip(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	ac, ok := accessContextOrAbort(c)
	if !ok {
		return
	}

	if err := h.Service.DeleteTrip(id, ac, middleware.GetIPFromContext(c)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "trip deleted"})
}

// ===========================
// 🔗 Sharing
func (h *Handler) ShareTrip(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	ac, ok := accessContextOrAbort(c)
	if !ok {
		return
	}

	var req ShareTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.Service.ShareTrip(id, &req, ac, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, token)
}

func (h *Handler) ListShares(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	ac, ok := accessContextOrAbort(c)
	if !ok {
		return
	}

	tokens, err := h.Service.ListShares(id, ac.UserID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

func (h *Handler) RevokeShare(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	tokenID, err := strconv.ParseUint(c.Param("tokenID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token id"})
		return
	}
	ac, ok := accessContextOrAbort(c)
	if !ok {
		return
	}

	if err := h.Service.RevokeShare(id, uint(tokenID), ac, middleware.GetIPFromContext(c)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "share link revoked"})
}
