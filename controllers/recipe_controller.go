package controllers

import (
	"cake-shop/models"
	"cake-shop/pricing"
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type RecipeController struct{}

func recipeLines(ctx context.Context, recipeID int) ([]models.RecipeIngredient, []pricing.RecipeLine) {
	rows, err := models.DB.Query(ctx,
		`SELECT ri.id, ri.recipe_id, ri.ingredient_id, ri.quantity, i.name, i.unit, i.price, i.package_size, i.indivisible
		 FROM recipe_ingredients ri JOIN ingredients i ON i.id = ri.ingredient_id
		 WHERE ri.recipe_id=$1 ORDER BY ri.id`, recipeID)
	if err != nil {
		return nil, nil
	}
	defer rows.Close()

	items := []models.RecipeIngredient{}
	lines := []pricing.RecipeLine{}
	for rows.Next() {
		var item models.RecipeIngredient
		var ing pricing.Ingredient
		rows.Scan(&item.ID, &item.RecipeID, &item.IngredientID, &item.Quantity,
			&ing.Name, &ing.Unit, &ing.Price, &ing.PackageSize, &ing.Indivisible)

		item.IngredientName = ing.Name
		item.Unit = ing.Unit
		item.Cost = pricing.LineCost(ing, item.Quantity)
		items = append(items, item)
		lines = append(lines, pricing.RecipeLine{Ingredient: ing, Quantity: item.Quantity})
	}
	return items, lines
}

// recipeTotalByID rederives a recipe's total cost; used when linking an
// option's price to a recipe.
func recipeTotalByID(ctx context.Context, recipeID int) (float64, bool) {
	var exists int
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM recipes WHERE id=$1", recipeID).Scan(&exists)
	if exists == 0 {
		return 0, false
	}
	_, lines := recipeLines(ctx, recipeID)
	return pricing.RecipeTotal(lines), true
}

// @Summary Get all recipes
// @Description Get recipes with computed total costs (Admin)
// @Tags Admin - Recipes
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/recipes [get]
func (ctrl *RecipeController) GetAllRecipes(c *gin.Context) {
	ctx := context.Background()

	rows, err := models.DB.Query(ctx,
		"SELECT id, name, COALESCE(description, ''), created_at, updated_at FROM recipes ORDER BY name")
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load recipes"})
		return
	}
	defer rows.Close()

	recipes := []models.Recipe{}
	for rows.Next() {
		var r models.Recipe
		rows.Scan(&r.ID, &r.Name, &r.Description, &r.CreatedAt, &r.UpdatedAt)
		recipes = append(recipes, r)
	}

	for i := range recipes {
		_, lines := recipeLines(ctx, recipes[i].ID)
		recipes[i].TotalCost = pricing.RecipeTotal(lines)
	}

	c.JSON(200, gin.H{"success": true, "message": "Recipes retrieved", "data": recipes})
}

// @Summary Get recipe by ID
// @Description Get a recipe with ingredient lines and costs (Admin)
// @Tags Admin - Recipes
// @Security BearerAuth
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} models.Response
// @Router /admin/recipes/{id} [get]
func (ctrl *RecipeController) GetRecipeByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	ctx := context.Background()

	var r models.Recipe
	err := models.DB.QueryRow(ctx,
		"SELECT id, name, COALESCE(description, ''), created_at, updated_at FROM recipes WHERE id=$1",
		id).Scan(&r.ID, &r.Name, &r.Description, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Recipe not found"})
		return
	}

	items, lines := recipeLines(ctx, id)
	r.TotalCost = pricing.RecipeTotal(lines)

	c.JSON(200, gin.H{"success": true, "message": "Recipe retrieved", "data": gin.H{
		"recipe":      r,
		"ingredients": items,
	}})
}

// @Summary Create recipe
// @Description Create a new recipe (Admin)
// @Tags Admin - Recipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.RecipeRequest true "Recipe"
// @Success 201 {object} models.Response
// @Router /admin/recipes [post]
func (ctrl *RecipeController) CreateRecipe(c *gin.Context) {
	var req models.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	now := time.Now()
	var id int
	err := models.DB.QueryRow(context.Background(),
		"INSERT INTO recipes (name, description, created_at, updated_at) VALUES ($1,$2,$3,$3) RETURNING id",
		req.Name, req.Description, now).Scan(&id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create recipe: " + err.Error()})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Recipe created", "data": gin.H{"id": id, "name": req.Name}})
}

// @Summary Update recipe
// @Description Update recipe name/description (Admin)
// @Tags Admin - Recipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param request body models.RecipeRequest true "Recipe"
// @Success 200 {object} models.Response
// @Router /admin/recipes/{id} [patch]
func (ctrl *RecipeController) UpdateRecipe(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req models.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	tag, err := models.DB.Exec(context.Background(),
		"UPDATE recipes SET name=$1, description=$2, updated_at=$3 WHERE id=$4",
		req.Name, req.Description, time.Now(), id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update recipe"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Recipe not found"})
		return
	}

	// Renaming a recipe affects legacy name-linked options.
	notifyCatalogChange("recipe_updated", "")

	c.JSON(200, gin.H{"success": true, "message": "Recipe updated"})
}

// @Summary Delete recipe
// @Description Delete a recipe and its ingredient lines (Admin)
// @Tags Admin - Recipes
// @Security BearerAuth
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} models.Response
// @Router /admin/recipes/{id} [delete]
func (ctrl *RecipeController) DeleteRecipe(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	ctx := context.Background()

	models.DB.Exec(ctx, "DELETE FROM recipe_ingredients WHERE recipe_id=$1", id)
	models.DB.Exec(ctx, "UPDATE section_options SET linked_recipe_id=NULL WHERE linked_recipe_id=$1", id)

	tag, err := models.DB.Exec(ctx, "DELETE FROM recipes WHERE id=$1", id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete recipe"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Recipe not found"})
		return
	}

	notifyCatalogChange("recipe_deleted", "")

	c.JSON(200, gin.H{"success": true, "message": "Recipe deleted"})
}

// @Summary Add recipe ingredient
// @Description Add an ingredient line to a recipe (Admin)
// @Tags Admin - Recipes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param request body models.RecipeIngredientRequest true "Ingredient line"
// @Success 201 {object} models.Response
// @Router /admin/recipes/{id}/ingredients [post]
func (ctrl *RecipeController) AddRecipeIngredient(c *gin.Context) {
	recipeID, _ := strconv.Atoi(c.Param("id"))

	var req models.RecipeIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	ctx := context.Background()

	var exists int
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM recipes WHERE id=$1", recipeID).Scan(&exists)
	if exists == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Recipe not found"})
		return
	}
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM ingredients WHERE id=$1", req.IngredientID).Scan(&exists)
	if exists == 0 {
		c.JSON(400, gin.H{"success": false, "message": "Ingredient not found"})
		return
	}

	var id int
	err := models.DB.QueryRow(ctx,
		"INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity) VALUES ($1,$2,$3) RETURNING id",
		recipeID, req.IngredientID, req.Quantity).Scan(&id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to add ingredient: " + err.Error()})
		return
	}

	total, _ := recipeTotalByID(ctx, recipeID)
	c.JSON(201, gin.H{"success": true, "message": "Ingredient added", "data": gin.H{"id": id, "total_cost": total}})
}

// @Summary Remove recipe ingredient
// @Description Remove an ingredient line from a recipe (Admin)
// @Tags Admin - Recipes
// @Security BearerAuth
// @Produce json
// @Param id path int true "Recipe ID"
// @Param lineId path int true "Line ID"
// @Success 200 {object} models.Response
// @Router /admin/recipes/{id}/ingredients/{lineId} [delete]
func (ctrl *RecipeController) RemoveRecipeIngredient(c *gin.Context) {
	recipeID, _ := strconv.Atoi(c.Param("id"))
	lineID, _ := strconv.Atoi(c.Param("lineId"))

	tag, err := models.DB.Exec(context.Background(),
		"DELETE FROM recipe_ingredients WHERE id=$1 AND recipe_id=$2", lineID, recipeID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to remove ingredient"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Ingredient line not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Ingredient removed"})
}

// @Summary Get all ingredients
// @Description Get the ingredient catalog (Admin)
// @Tags Admin - Ingredients
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/ingredients [get]
func (ctrl *RecipeController) GetAllIngredients(c *gin.Context) {
	rows, err := models.DB.Query(context.Background(),
		"SELECT id, name, unit, price, package_size, indivisible, created_at FROM ingredients ORDER BY name")
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load ingredients"})
		return
	}
	defer rows.Close()

	ingredients := []models.Ingredient{}
	for rows.Next() {
		var i models.Ingredient
		rows.Scan(&i.ID, &i.Name, &i.Unit, &i.Price, &i.PackageSize, &i.Indivisible, &i.CreatedAt)
		ingredients = append(ingredients, i)
	}

	c.JSON(200, gin.H{"success": true, "message": "Ingredients retrieved", "data": ingredients})
}

// @Summary Create ingredient
// @Description Create a new ingredient (Admin)
// @Tags Admin - Ingredients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.IngredientRequest true "Ingredient"
// @Success 201 {object} models.Response
// @Router /admin/ingredients [post]
func (ctrl *RecipeController) CreateIngredient(c *gin.Context) {
	var req models.IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	var id int
	err := models.DB.QueryRow(context.Background(),
		"INSERT INTO ingredients (name, unit, price, package_size, indivisible, created_at) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id",
		req.Name, req.Unit, req.Price, req.PackageSize, req.Indivisible, time.Now()).Scan(&id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create ingredient: " + err.Error()})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Ingredient created", "data": gin.H{"id": id}})
}

// @Summary Update ingredient
// @Description Update an ingredient; recipe totals pick the change up on next read (Admin)
// @Tags Admin - Ingredients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Ingredient ID"
// @Param request body models.IngredientRequest true "Ingredient"
// @Success 200 {object} models.Response
// @Router /admin/ingredients/{id} [patch]
func (ctrl *RecipeController) UpdateIngredient(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req models.IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	tag, err := models.DB.Exec(context.Background(),
		"UPDATE ingredients SET name=$1, unit=$2, price=$3, package_size=$4, indivisible=$5 WHERE id=$6",
		req.Name, req.Unit, req.Price, req.PackageSize, req.Indivisible, id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update ingredient"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Ingredient not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Ingredient updated"})
}

// @Summary Delete ingredient
// @Description Delete an ingredient not used by any recipe (Admin)
// @Tags Admin - Ingredients
// @Security BearerAuth
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} models.Response
// @Router /admin/ingredients/{id} [delete]
func (ctrl *RecipeController) DeleteIngredient(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	ctx := context.Background()

	var used int
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM recipe_ingredients WHERE ingredient_id=$1", id).Scan(&used)
	if used > 0 {
		c.JSON(400, gin.H{"success": false, "message": "Ingredient is used by a recipe"})
		return
	}

	tag, err := models.DB.Exec(ctx, "DELETE FROM ingredients WHERE id=$1", id)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete ingredient"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(404, gin.H{"success": false, "message": "Ingredient not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Ingredient deleted"})
}
