package controllers

import (
	"cake-shop/models"
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

type VisitController struct{}

// @Summary Log page visit
// @Description Record a storefront page visit; IP and user agent come from the request
// @Tags Visits
// @Accept json
// @Produce json
// @Param request body models.VisitRequest true "Visit"
// @Success 201 {object} models.Response
// @Failure 500 {object} models.ErrorResponse
// @Router /visits [post]
func (ctrl *VisitController) LogVisit(c *gin.Context) {
	var req models.VisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Path is required"})
		return
	}

	var city, country *string
	if v := c.GetHeader("X-Vercel-IP-City"); v != "" {
		city = &v
	}
	if v := c.GetHeader("X-Vercel-IP-Country"); v != "" {
		country = &v
	}

	_, err := models.DB.Exec(context.Background(),
		"INSERT INTO page_visits (path, ip, user_agent, city, country, created_at) VALUES ($1,$2,$3,$4,$5,$6)",
		req.Path, c.ClientIP(), c.Request.UserAgent(), city, country, time.Now())
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to log visit"})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Visit logged"})
}

// @Summary Get shop stats
// @Description Visit and order aggregates (Admin)
// @Tags Admin - Stats
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/stats [get]
func (ctrl *VisitController) GetStats(c *gin.Context) {
	ctx := context.Background()

	var totalVisits, visitsToday, totalOrders int
	var revenue float64
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM page_visits").Scan(&totalVisits)
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM page_visits WHERE created_at >= CURRENT_DATE").Scan(&visitsToday)
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&totalOrders)
	models.DB.QueryRow(ctx, "SELECT COALESCE(SUM(total), 0) FROM orders").Scan(&revenue)

	topPaths := []gin.H{}
	rows, err := models.DB.Query(ctx,
		"SELECT path, COUNT(*) AS visits FROM page_visits GROUP BY path ORDER BY visits DESC LIMIT 10")
	if err == nil {
		for rows.Next() {
			var path string
			var visits int
			rows.Scan(&path, &visits)
			topPaths = append(topPaths, gin.H{"path": path, "visits": visits})
		}
		rows.Close()
	}

	recent := []models.PageVisit{}
	rows, err = models.DB.Query(ctx,
		"SELECT id, path, ip, user_agent, city, country, created_at FROM page_visits ORDER BY created_at DESC LIMIT 20")
	if err == nil {
		for rows.Next() {
			var v models.PageVisit
			rows.Scan(&v.ID, &v.Path, &v.IP, &v.UserAgent, &v.City, &v.Country, &v.CreatedAt)
			recent = append(recent, v)
		}
		rows.Close()
	}

	c.JSON(200, gin.H{
		"success": true, "message": "Stats retrieved",
		"data": gin.H{
			"total_visits":  totalVisits,
			"visits_today":  visitsToday,
			"total_orders":  totalOrders,
			"revenue":       revenue,
			"top_paths":     topPaths,
			"recent_visits": recent,
		},
	})
}
