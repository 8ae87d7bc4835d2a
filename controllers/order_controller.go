package controllers

import (
	"cake-shop/models"
	"cake-shop/pricing"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderController struct{}

func (ctrl *OrderController) getPaginationParams(c *gin.Context, defaultLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}

	offset = (page - 1) * limit
	return page, limit, offset
}

func (ctrl *OrderController) generateLinks(c *gin.Context, page, limit, totalPages int) models.PaginationLinks {
	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}

	host := c.Request.Host
	path := c.Request.URL.Path
	queryParams := c.Request.URL.Query()

	makeURL := func(pageNum int) string {
		newParams := url.Values{}
		for key, values := range queryParams {
			if key != "page" {
				for _, value := range values {
					newParams.Add(key, value)
				}
			}
		}
		newParams.Set("page", strconv.Itoa(pageNum))
		newParams.Set("limit", strconv.Itoa(limit))
		return fmt.Sprintf("%s://%s%s?%s", scheme, host, path, newParams.Encode())
	}

	links := models.PaginationLinks{
		Self: makeURL(page),
	}

	if page > 1 {
		links.Prev = makeURL(page - 1)
	}

	if page < totalPages {
		links.Next = makeURL(page + 1)
	}

	return links
}

func (ctrl *OrderController) buildResponse(c *gin.Context, message string, data interface{}, page, limit, totalItems int) models.HATEOASResponse {
	totalPages := 0
	if totalItems > 0 {
		totalPages = (totalItems + limit - 1) / limit
	}

	if page > totalPages && totalPages > 0 {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	meta := models.PaginationMeta{
		Page:       page,
		Limit:      limit,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}

	return models.HATEOASResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
		Links:   ctrl.generateLinks(c, page, limit, totalPages),
	}
}

func generateOrderNumber() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// @Summary Price quote
// @Description Price a cart without creating an order; global selections stand in for sections a line leaves unselected
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body models.QuoteRequest true "Quote"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /orders/quote [post]
func (ctrl *OrderController) Quote(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	snap := buildSnapshot(context.Background())
	for key, name := range req.GlobalSelections {
		snap.SetGlobalSelection(key, name)
	}

	items := []gin.H{}
	total := 0.0
	for _, item := range req.Items {
		line := &pricing.LineItem{
			ID:         item.ID,
			Selections: item.DynamicSelections,
			Reward:     item.Reward,
			Quantity:   item.Quantity,
		}
		lineTotal := snap.LineTotal(line, nil)
		items = append(items, gin.H{
			"id":               item.ID,
			"line_total":       lineTotal,
			"missing_sections": snap.MissingRequired(line),
		})
		total += lineTotal
	}

	c.JSON(200, gin.H{
		"success": true, "message": "Quote computed",
		"data": gin.H{"items": items, "total": total},
	})
}

// @Summary Checkout
// @Description Validate a cart and create an order; totals are recomputed server-side
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body models.CheckoutRequest true "Checkout"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /orders [post]
func (ctrl *OrderController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	ctx := context.Background()
	snap := buildSnapshot(ctx)

	// The whole cart is validated before anything is written: one bad
	// line rejects the checkout and no orders row exists afterwards.
	orderLines := make([]models.OrderLine, 0, len(req.Items))
	total := 0.0
	for i, item := range req.Items {
		if item.Quantity < 1 {
			c.JSON(400, gin.H{"success": false, "message": fmt.Sprintf("Item %d: quantity must be positive", i+1)})
			return
		}

		line := &pricing.LineItem{
			ID:         item.ID,
			Selections: item.DynamicSelections,
			Reward:     item.Reward,
			Quantity:   item.Quantity,
		}

		if missing := snap.MissingRequired(line); len(missing) > 0 {
			c.JSON(400, gin.H{
				"success": false,
				"message": fmt.Sprintf("Item %d: missing required selections", i+1),
				"data":    gin.H{"missing_sections": missing},
			})
			return
		}

		lineTotal := snap.LineTotal(line, nil)
		orderLines = append(orderLines, models.OrderLine{
			Selections: item.DynamicSelections,
			Reward:     item.Reward,
			Quantity:   item.Quantity,
			LineTotal:  lineTotal,
		})
		total += lineTotal
	}

	itemsJSON, _ := json.Marshal(orderLines)
	orderNumber := generateOrderNumber()

	var orderID int
	err := models.DB.QueryRow(ctx,
		"INSERT INTO orders (order_number, email, customer_name, items, total, created_at) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id",
		orderNumber, req.CustomerEmail, req.CustomerName, itemsJSON, total, time.Now()).Scan(&orderID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create order: " + err.Error()})
		return
	}

	// Email is best effort: the order stands even when SMTP is down.
	if emailService, err := models.NewEmailService(); err == nil {
		if err := emailService.SendOrderConfirmation(req.CustomerEmail, req.CustomerName, orderNumber, orderLines, total, req.PDFBase64, req.PDFFilename); err != nil {
			log.Println("Failed to send confirmation email:", err)
		}
		if err := emailService.SendShopNotification(orderNumber, req.CustomerEmail, req.CustomerName, orderLines, total); err != nil {
			log.Println("Failed to send shop notification:", err)
		}
	} else {
		log.Println("Email service unavailable:", err)
	}

	c.JSON(201, gin.H{
		"success": true, "message": "Order created successfully",
		"data": gin.H{
			"id":           orderID,
			"order_number": orderNumber,
			"total":        total,
			"items":        orderLines,
		},
	})
}

// @Summary Get all orders
// @Description Get all orders with pagination (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param search query string false "Search by order number or email"
// @Success 200 {object} models.HATEOASResponse
// @Router /admin/orders [get]
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	page, limit, offset := ctrl.getPaginationParams(c, 10)
	search := strings.TrimSpace(c.Query("search"))

	ctx := context.Background()

	countQuery := "SELECT COUNT(*) FROM orders"
	listQuery := "SELECT id, order_number, email, customer_name, items, total, created_at FROM orders"
	args := []interface{}{}
	if search != "" {
		countQuery += " WHERE order_number ILIKE $1 OR email ILIKE $1"
		listQuery += " WHERE order_number ILIKE $1 OR email ILIKE $1"
		args = append(args, "%"+search+"%")
	}
	listQuery += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	var total int
	models.DB.QueryRow(ctx, countQuery, args...).Scan(&total)

	rows, err := models.DB.Query(ctx, listQuery, append(args, limit, offset)...)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load orders"})
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		var itemsJSON []byte
		rows.Scan(&o.ID, &o.OrderNumber, &o.Email, &o.CustomerName, &itemsJSON, &o.Total, &o.CreatedAt)
		json.Unmarshal(itemsJSON, &o.Items)
		orders = append(orders, o)
	}

	c.JSON(200, ctrl.buildResponse(c, "Orders retrieved", orders, page, limit, total))
}

// @Summary Get order by ID
// @Description Get order details (Admin)
// @Tags Admin - Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var o models.Order
	var itemsJSON []byte
	err := models.DB.QueryRow(context.Background(),
		"SELECT id, order_number, email, customer_name, items, total, created_at FROM orders WHERE id=$1",
		id).Scan(&o.ID, &o.OrderNumber, &o.Email, &o.CustomerName, &itemsJSON, &o.Total, &o.CreatedAt)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Order not found"})
		return
	}
	json.Unmarshal(itemsJSON, &o.Items)

	c.JSON(200, gin.H{"success": true, "message": "Order retrieved", "data": o})
}
