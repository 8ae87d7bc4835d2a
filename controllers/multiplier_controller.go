package controllers

import (
	"cake-shop/models"
	"cake-shop/pricing"
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

type MultiplierController struct{}

func sectionOptionsForKey(ctx context.Context, key string) []pricing.Option {
	rows, err := models.DB.Query(ctx,
		"SELECT id, name, price, sort_order, linked_recipe_id FROM section_options WHERE section=$1 ORDER BY sort_order, id", key)
	if err != nil {
		return nil
	}
	defer rows.Close()

	options := []pricing.Option{}
	for rows.Next() {
		var o pricing.Option
		rows.Scan(&o.ID, &o.Name, &o.Price, &o.SortOrder, &o.LinkedRecipeID)
		options = append(options, o)
	}
	return options
}

// @Summary List diameter multipliers
// @Description Get multiplier rows for a section (Admin)
// @Tags Admin - Multipliers
// @Security BearerAuth
// @Produce json
// @Param key path string true "Section key"
// @Success 200 {object} models.Response
// @Router /admin/sections/{key}/diameter [get]
func (ctrl *MultiplierController) GetMultipliers(c *gin.Context) {
	key := c.Param("key")

	rows, err := models.DB.Query(context.Background(),
		"SELECT id, section_key, option_id, base_option_id, multiplier, created_at FROM diameter_multipliers WHERE section_key=$1 ORDER BY option_id", key)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load multipliers"})
		return
	}
	defer rows.Close()

	multipliers := []models.DiameterMultiplier{}
	for rows.Next() {
		var m models.DiameterMultiplier
		rows.Scan(&m.ID, &m.SectionKey, &m.OptionID, &m.BaseOptionID, &m.Multiplier, &m.CreatedAt)
		multipliers = append(multipliers, m)
	}

	c.JSON(200, gin.H{"success": true, "message": "Multipliers retrieved", "data": multipliers})
}

// @Summary Toggle diameter management
// @Description Enable (rows at 1.0 for every option) or disable (delete all rows) diameter management for a section (Admin)
// @Tags Admin - Multipliers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param key path string true "Section key"
// @Param request body models.ToggleDiameterRequest true "Toggle"
// @Success 200 {object} models.Response
// @Router /admin/sections/{key}/diameter [post]
func (ctrl *MultiplierController) ToggleDiameter(c *gin.Context) {
	key := c.Param("key")

	var req models.ToggleDiameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	ctx := context.Background()

	if !req.Enabled {
		_, err := models.DB.Exec(ctx, "DELETE FROM diameter_multipliers WHERE section_key=$1", key)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to disable diameter management"})
			return
		}
		notifyCatalogChange("diameter_disabled", key)
		c.JSON(200, gin.H{"success": true, "message": "Diameter management disabled"})
		return
	}

	options := sectionOptionsForKey(ctx, key)
	if len(options) == 0 {
		c.JSON(400, gin.H{"success": false, "message": "Section has no options"})
		return
	}

	now := time.Now()
	for _, opt := range options {
		_, err := models.DB.Exec(ctx,
			"INSERT INTO diameter_multipliers (section_key, option_id, multiplier, created_at) VALUES ($1,$2,1.0,$3) ON CONFLICT (section_key, option_id) DO NOTHING",
			key, opt.ID, now)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to enable diameter management: " + err.Error()})
			return
		}
	}

	notifyCatalogChange("diameter_enabled", key)

	c.JSON(200, gin.H{"success": true, "message": "Diameter management enabled"})
}

// @Summary Set base option
// @Description Recompute sibling multipliers from the base size, (size/base)^2 rounded to 1 decimal (Admin)
// @Tags Admin - Multipliers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param key path string true "Section key"
// @Param request body models.SetBaseOptionRequest true "Base option"
// @Success 200 {object} models.Response
// @Router /admin/sections/{key}/diameter/base [post]
func (ctrl *MultiplierController) SetBaseOption(c *gin.Context) {
	key := c.Param("key")

	var req models.SetBaseOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	ctx := context.Background()
	options := sectionOptionsForKey(ctx, key)

	found := false
	for _, opt := range options {
		if opt.ID == req.BaseOptionID {
			found = true
		}
	}
	if !found {
		c.JSON(400, gin.H{"success": false, "message": "Base option does not belong to section"})
		return
	}

	computed := pricing.BaseMultipliers(options, req.BaseOptionID)
	now := time.Now()
	for optionID, value := range computed {
		_, err := models.DB.Exec(ctx,
			"INSERT INTO diameter_multipliers (section_key, option_id, base_option_id, multiplier, created_at) VALUES ($1,$2,$3,$4,$5) ON CONFLICT (section_key, option_id) DO UPDATE SET base_option_id=$3, multiplier=$4",
			key, optionID, req.BaseOptionID, value, now)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to save multipliers: " + err.Error()})
			return
		}
	}

	notifyCatalogChange("diameter_base_set", key)

	c.JSON(200, gin.H{"success": true, "message": "Base option set", "data": computed})
}

// @Summary Set multiplier
// @Description Set one option's multiplier directly (Admin)
// @Tags Admin - Multipliers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param key path string true "Section key"
// @Param request body models.SetMultiplierRequest true "Multiplier"
// @Success 200 {object} models.Response
// @Router /admin/sections/{key}/diameter [patch]
func (ctrl *MultiplierController) SetMultiplier(c *gin.Context) {
	key := c.Param("key")

	var req models.SetMultiplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	tag, err := models.DB.Exec(context.Background(),
		"UPDATE diameter_multipliers SET multiplier=$1 WHERE section_key=$2 AND option_id=$3",
		req.Multiplier, key, req.OptionID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update multiplier"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Multiplier row not found"})
		return
	}

	notifyCatalogChange("multiplier_updated", key)

	c.JSON(200, gin.H{"success": true, "message": "Multiplier updated"})
}
