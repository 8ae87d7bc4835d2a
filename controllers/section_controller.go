package controllers

import (
	"cake-shop/models"
	"cake-shop/pricing"
	"cake-shop/utils"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type SectionController struct{}

const catalogCacheKey = "catalog_v1"

var (
	sortOrderProbe     sync.Once
	sortOrderSupported bool
)

// supportsSortOrder probes section_meta for the sort_order column once per
// process. Older databases predate the column; the probe result is
// remembered so the fallback path does not re-fail on every read.
func supportsSortOrder() bool {
	sortOrderProbe.Do(func() {
		var count int
		err := models.DB.QueryRow(context.Background(),
			"SELECT COUNT(*) FROM information_schema.columns WHERE table_name='section_meta' AND column_name='sort_order'").Scan(&count)
		sortOrderSupported = err == nil && count > 0
	})
	return sortOrderSupported
}

func fetchSectionMeta(ctx context.Context) []models.SectionMeta {
	query := "SELECT id, section, COALESCE(description, ''), required, sort_order FROM section_meta ORDER BY id"
	if !supportsSortOrder() {
		query = "SELECT id, section, COALESCE(description, ''), required, NULL::int FROM section_meta ORDER BY id"
	}

	rows, err := models.DB.Query(ctx, query)
	if err != nil {
		return nil
	}
	defer rows.Close()

	meta := []models.SectionMeta{}
	for rows.Next() {
		var m models.SectionMeta
		rows.Scan(&m.ID, &m.Section, &m.Description, &m.Required, &m.SortOrder)
		meta = append(meta, m)
	}
	return meta
}

func fetchSectionOptions(ctx context.Context) []models.SectionOption {
	rows, err := models.DB.Query(ctx,
		"SELECT id, section, name, price, COALESCE(description, ''), sort_order, COALESCE(image_url, ''), linked_recipe_id FROM section_options ORDER BY section, sort_order, id")
	if err != nil {
		return nil
	}
	defer rows.Close()

	options := []models.SectionOption{}
	for rows.Next() {
		var o models.SectionOption
		rows.Scan(&o.ID, &o.Section, &o.Name, &o.Price, &o.Description, &o.SortOrder, &o.ImageURL, &o.LinkedRecipeID)
		options = append(options, o)
	}
	return options
}

func fetchMultipliers(ctx context.Context) []models.DiameterMultiplier {
	rows, err := models.DB.Query(ctx,
		"SELECT id, section_key, option_id, base_option_id, multiplier FROM diameter_multipliers ORDER BY id")
	if err != nil {
		return nil
	}
	defer rows.Close()

	multipliers := []models.DiameterMultiplier{}
	for rows.Next() {
		var m models.DiameterMultiplier
		rows.Scan(&m.ID, &m.SectionKey, &m.OptionID, &m.BaseOptionID, &m.Multiplier)
		multipliers = append(multipliers, m)
	}
	return multipliers
}

func fetchRecipeNames(ctx context.Context) []string {
	rows, err := models.DB.Query(ctx, "SELECT name FROM recipes")
	if err != nil {
		return nil
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		rows.Scan(&name)
		names = append(names, name)
	}
	return names
}

func fetchFallbackOrder(ctx context.Context) []string {
	if models.RedisClient == nil {
		return nil
	}
	raw, err := models.RedisClient.Get(ctx, models.SectionOrderKey).Result()
	if err != nil {
		return nil
	}
	var order []string
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return nil
	}
	return order
}

// buildSnapshot assembles the pricing view used by both the storefront
// catalog and checkout repricing. Read failures degrade to an empty or
// partial snapshot, never to an error response.
func buildSnapshot(ctx context.Context) *pricing.Snapshot {
	meta := fetchSectionMeta(ctx)
	options := fetchSectionOptions(ctx)
	multipliers := fetchMultipliers(ctx)

	pmeta := make([]pricing.SectionMeta, 0, len(meta))
	for _, m := range meta {
		pmeta = append(pmeta, pricing.SectionMeta{
			Key:         m.Section,
			Description: m.Description,
			Required:    m.Required,
			SortOrder:   m.SortOrder,
		})
	}

	byNameSection := map[string][]pricing.Option{}
	for _, o := range options {
		byNameSection[o.Section] = append(byNameSection[o.Section], pricing.Option{
			ID:             o.ID,
			Name:           o.Name,
			Price:          o.Price,
			SortOrder:      o.SortOrder,
			LinkedRecipeID: o.LinkedRecipeID,
		})
	}

	sections := pricing.MergeSections(pmeta, byNameSection, fetchFallbackOrder(ctx))

	pmult := make([]pricing.Multiplier, 0, len(multipliers))
	for _, m := range multipliers {
		pmult = append(pmult, pricing.Multiplier{
			SectionKey:   m.SectionKey,
			OptionID:     m.OptionID,
			BaseOptionID: m.BaseOptionID,
			Value:        m.Multiplier,
		})
	}

	return pricing.NewSnapshot(sections, pmult, fetchRecipeNames(ctx))
}

func invalidateCatalogCache() {
	if models.RedisClient == nil {
		return
	}
	ctx := context.Background()
	iter := models.RedisClient.Scan(ctx, 0, "catalog_*", 0).Iterator()
	for iter.Next(ctx) {
		models.RedisClient.Del(ctx, iter.Val())
	}
}

func notifyCatalogChange(kind, key string) {
	invalidateCatalogCache()
	payload, _ := json.Marshal(gin.H{"type": kind, "section": key, "at": time.Now().Unix()})
	models.PublishCatalogEvent(string(payload))
}

// @Summary Get catalog
// @Description Get reconciled sections with options and diameter multipliers
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.Response
// @Router /catalog [get]
func (ctrl *SectionController) GetCatalog(c *gin.Context) {
	ctx := context.Background()

	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, catalogCacheKey).Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	snap := buildSnapshot(ctx)
	options := fetchSectionOptions(ctx)

	optionsBySection := map[string][]models.SectionOption{}
	for _, o := range options {
		optionsBySection[o.Section] = append(optionsBySection[o.Section], o)
	}

	sections := []gin.H{}
	for _, sec := range snap.Sections {
		sections = append(sections, gin.H{
			"key":      sec.Key,
			"label":    sec.Label,
			"required": sec.Required,
			"options":  optionsBySection[sec.Key],
		})
	}

	response := gin.H{
		"success": true, "message": "Catalog retrieved",
		"data": gin.H{
			"sections":    sections,
			"multipliers": fetchMultipliers(ctx),
		},
	}

	if models.RedisClient != nil {
		jsonData, _ := json.Marshal(response)
		models.RedisClient.Set(ctx, catalogCacheKey, string(jsonData), 5*time.Minute)
	}

	c.JSON(200, response)
}

// @Summary Save section
// @Description Create or update a section with its options (Admin)
// @Tags Admin - Sections
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.SaveSectionRequest true "Section"
// @Success 200 {object} models.Response
// @Router /admin/sections [post]
func (ctrl *SectionController) SaveSection(c *gin.Context) {
	var req models.SaveSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	key := strings.TrimSpace(req.Section)
	if key == "" {
		c.JSON(400, gin.H{"success": false, "message": "Section key is required"})
		return
	}

	ctx := context.Background()
	now := time.Now()

	// The key is immutable: saving an existing section only touches its
	// description and required flag.
	_, err := models.DB.Exec(ctx,
		"INSERT INTO section_meta (section, description, required, created_at, updated_at) VALUES ($1,$2,$3,$4,$4) ON CONFLICT (section) DO UPDATE SET description=$2, required=$3, updated_at=$4",
		key, req.Description, req.Required, now)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to save section: " + err.Error()})
		return
	}

	keptIDs := []int{}
	for _, opt := range req.Options {
		price := opt.Price
		if opt.LinkedRecipeID != nil {
			if derived, ok := recipeTotalByID(ctx, *opt.LinkedRecipeID); ok {
				price = derived
			}
		}

		if opt.ID != nil {
			_, err = models.DB.Exec(ctx,
				"UPDATE section_options SET name=$1, price=$2, description=$3, sort_order=$4, linked_recipe_id=$5, updated_at=$6 WHERE id=$7 AND section=$8",
				opt.Name, price, opt.Description, opt.SortOrder, opt.LinkedRecipeID, now, *opt.ID, key)
			if err == nil {
				keptIDs = append(keptIDs, *opt.ID)
			}
			continue
		}

		var id int
		err = models.DB.QueryRow(ctx,
			"INSERT INTO section_options (section, name, price, description, sort_order, linked_recipe_id, created_at, updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$7) RETURNING id",
			key, opt.Name, price, opt.Description, opt.SortOrder, opt.LinkedRecipeID, now).Scan(&id)
		if err == nil {
			keptIDs = append(keptIDs, id)
		}
	}

	// Options dropped from the payload are deleted, multipliers included.
	query := "DELETE FROM section_options WHERE section=$1"
	args := []interface{}{key}
	if len(keptIDs) > 0 {
		placeholders := make([]string, len(keptIDs))
		for i, id := range keptIDs {
			placeholders[i] = "$" + strconv.Itoa(i+2)
			args = append(args, id)
		}
		query += " AND id NOT IN (" + strings.Join(placeholders, ",") + ")"
	}
	models.DB.Exec(ctx, query, args...)
	models.DB.Exec(ctx,
		"DELETE FROM diameter_multipliers WHERE section_key=$1 AND option_id NOT IN (SELECT id FROM section_options WHERE section=$1)", key)

	notifyCatalogChange("section_saved", key)

	c.JSON(200, gin.H{"success": true, "message": "Section saved successfully"})
}

// @Summary Delete section
// @Description Delete a section, its options and multipliers (Admin)
// @Tags Admin - Sections
// @Security BearerAuth
// @Produce json
// @Param key path string true "Section key"
// @Success 200 {object} models.Response
// @Router /admin/sections/{key} [delete]
func (ctrl *SectionController) DeleteSection(c *gin.Context) {
	key := c.Param("key")
	ctx := context.Background()

	var exists int
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM section_meta WHERE section=$1", key).Scan(&exists)
	var optionCount int
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM section_options WHERE section=$1", key).Scan(&optionCount)
	if exists == 0 && optionCount == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Section not found"})
		return
	}

	models.DB.Exec(ctx, "DELETE FROM diameter_multipliers WHERE section_key=$1", key)
	models.DB.Exec(ctx, "DELETE FROM section_options WHERE section=$1", key)
	_, err := models.DB.Exec(ctx, "DELETE FROM section_meta WHERE section=$1", key)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete section"})
		return
	}

	notifyCatalogChange("section_deleted", key)

	c.JSON(200, gin.H{"success": true, "message": "Section deleted"})
}

// @Summary Reorder sections
// @Description Persist a new section order (Admin)
// @Tags Admin - Sections
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ReorderSectionsRequest true "Order"
// @Success 200 {object} models.Response
// @Router /admin/sections/order [put]
func (ctrl *SectionController) ReorderSections(c *gin.Context) {
	var req models.ReorderSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	ctx := context.Background()

	if supportsSortOrder() {
		now := time.Now()
		for i, key := range req.Order {
			_, err := models.DB.Exec(ctx,
				"INSERT INTO section_meta (section, description, required, sort_order, created_at, updated_at) VALUES ($1,'',false,$2,$3,$3) ON CONFLICT (section) DO UPDATE SET sort_order=$2, updated_at=$3",
				key, i, now)
			if err != nil {
				c.JSON(500, gin.H{"success": false, "message": "Failed to persist order: " + err.Error()})
				return
			}
		}
	} else {
		if models.RedisClient == nil {
			c.JSON(500, gin.H{"success": false, "message": "No order store available"})
			return
		}
		jsonData, _ := json.Marshal(req.Order)
		if err := models.RedisClient.Set(ctx, models.SectionOrderKey, string(jsonData), 0).Err(); err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Failed to persist order"})
			return
		}
	}

	notifyCatalogChange("sections_reordered", "")

	c.JSON(200, gin.H{"success": true, "message": "Section order saved", "data": gin.H{
		"order":                   req.Order,
		"supports_explicit_order": supportsSortOrder(),
	}})
}

// @Summary Upload option image
// @Description Attach an image to a section option (Admin)
// @Tags Admin - Sections
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Option ID"
// @Param image formData file true "Image"
// @Success 200 {object} models.Response
// @Router /admin/options/{id}/image [post]
func (ctrl *SectionController) UploadOptionImage(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	ctx := context.Background()

	var oldImage string
	err := models.DB.QueryRow(ctx, "SELECT COALESCE(image_url, '') FROM section_options WHERE id=$1", id).Scan(&oldImage)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Option not found"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Image file is required"})
		return
	}

	path, err := utils.UploadFile(c, file, "options")
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}

	_, err = models.DB.Exec(ctx, "UPDATE section_options SET image_url=$1, updated_at=$2 WHERE id=$3", "/uploads/"+path, time.Now(), id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to save image"})
		return
	}

	if oldImage != "" {
		utils.DeleteFile(strings.TrimPrefix(oldImage, "/uploads/"))
	}

	notifyCatalogChange("option_image", "")

	c.JSON(200, gin.H{"success": true, "message": "Image uploaded", "data": gin.H{"image_url": "/uploads/" + path}})
}
