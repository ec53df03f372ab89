package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoplite/shoplite/internal/service"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) DailySales(c *gin.Context) {
	resp, err := h.analyticsService.DailySales(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"daily_sales": resp})
}

func (h *AnalyticsHandler) TopProducts(c *gin.Context) {
	resp, err := h.analyticsService.TopProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"top_products": resp})
}

func (h *AnalyticsHandler) CategorySales(c *gin.Context) {
	resp, err := h.analyticsService.CategorySales(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category_sales": resp})
}

func (h *AnalyticsHandler) Summary(c *gin.Context) {
	resp, err := h.analyticsService.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
