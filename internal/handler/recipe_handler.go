package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/smith-matt-7272/recipe-app-api/internal/errors"
	"github.com/smith-matt-7272/recipe-app-api/internal/model"
	"github.com/smith-matt-7272/recipe-app-api/internal/service"
)

// RecipeHandler handles recipe CRUD, filtering and image upload.
type RecipeHandler struct {
	recipeService service.RecipeService
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(recipeService service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// NamedRef references a tag or ingredient by bare name.
type NamedRef struct {
	Name string `json:"name" validate:"required"`
}

// CreateRecipeRequest represents a recipe creation request. Any "user"
// key in the payload has no matching field and is dropped on bind.
type CreateRecipeRequest struct {
	Title       string     `json:"title" validate:"required"`
	TimeMinutes int        `json:"time_minutes" validate:"required,min=1"`
	Price       string     `json:"price" validate:"required"`
	Link        string     `json:"link" validate:"omitempty,url"`
	Description string     `json:"description"`
	Tags        []NamedRef `json:"tags" validate:"omitempty,dive"`
	Ingredients []NamedRef `json:"ingredients" validate:"omitempty,dive"`
}

// UpdateRecipeRequest represents a partial update. Nil fields were
// absent and stay unchanged; a present tags/ingredients key replaces the
// whole set, empty list meaning detach-all. A "user" key is likewise
// dropped on bind, so ownership reassignment is silently ignored.
type UpdateRecipeRequest struct {
	Title       *string     `json:"title"`
	TimeMinutes *int        `json:"time_minutes" validate:"omitempty,min=1"`
	Price       *string     `json:"price"`
	Link        *string     `json:"link" validate:"omitempty,url"`
	Description *string     `json:"description"`
	Tags        *[]NamedRef `json:"tags" validate:"omitempty,dive"`
	Ingredients *[]NamedRef `json:"ingredients" validate:"omitempty,dive"`
}

// RecipeSummary is the list response shape: no description, no
// tag/ingredient detail.
type RecipeSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	TimeMinutes int    `json:"time_minutes"`
	Price       string `json:"price"`
	Link        string `json:"link,omitempty"`
}

// RecipeDetail is the retrieve/mutation response shape.
type RecipeDetail struct {
	RecipeSummary
	Description string               `json:"description,omitempty"`
	Image       string               `json:"image,omitempty"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

// UploadImageResponse reports where an uploaded image was stored.
type UploadImageResponse struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}

func newRecipeSummary(recipe *model.Recipe) RecipeSummary {
	return RecipeSummary{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price.StringFixed(2),
		Link:        recipe.Link,
	}
}

func newRecipeDetail(recipe *model.Recipe) RecipeDetail {
	detail := RecipeDetail{
		RecipeSummary: newRecipeSummary(recipe),
		Description:   recipe.Description,
		Image:         recipe.Image,
		Tags:          make([]TagResponse, 0, len(recipe.Tags)),
		Ingredients:   make([]IngredientResponse, 0, len(recipe.Ingredients)),
	}
	for _, tag := range recipe.Tags {
		detail.Tags = append(detail.Tags, newTagResponse(&tag))
	}
	for _, ingredient := range recipe.Ingredients {
		detail.Ingredients = append(detail.Ingredients, newIngredientResponse(&ingredient))
	}
	return detail
}

// List godoc
// @Summary List the caller's recipes, newest first
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param tags query string false "Comma-separated tag ids"
// @Param ingredients query string false "Comma-separated ingredient ids"
// @Success 200 {array} RecipeSummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipe/recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	tagIDs, err := parseIDList(c.QueryParam("tags"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid tags filter", Code: "INVALID_FILTER",
		})
	}
	ingredientIDs, err := parseIDList(c.QueryParam("ingredients"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid ingredients filter", Code: "INVALID_FILTER",
		})
	}

	recipes, err := h.recipeService.List(c.Request().Context(), userID, tagIDs, ingredientIDs)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	summaries := make([]RecipeSummary, 0, len(recipes))
	for i := range recipes {
		summaries = append(summaries, newRecipeSummary(&recipes[i]))
	}
	return c.JSON(http.StatusOK, summaries)
}

// Create godoc
// @Summary Create a recipe owned by the caller
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRecipeRequest true "Recipe payload"
// @Success 201 {object} RecipeDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipe/recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid price", Code: "INVALID_PRICE",
		})
	}

	recipe, err := h.recipeService.Create(c.Request().Context(), userID, service.RecipeCreate{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       price,
		Link:        req.Link,
		Description: req.Description,
		Tags:        refNames(req.Tags),
		Ingredients: refNames(req.Ingredients),
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, newRecipeDetail(recipe))
}

// Get godoc
// @Summary Retrieve one of the caller's recipes
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 200 {object} RecipeDetail
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	recipe, err := h.recipeService.Get(c.Request().Context(), userID, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, newRecipeDetail(recipe))
}

// Update godoc
// @Summary Update one of the caller's recipes
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param request body UpdateRecipeRequest true "Fields to change"
// @Success 200 {object} RecipeDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/recipes/{id} [patch]
func (h *RecipeHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req UpdateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := service.RecipeUpdate{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Link:        req.Link,
		Description: req.Description,
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid price", Code: "INVALID_PRICE",
			})
		}
		update.Price = &price
	}
	if req.Tags != nil {
		names := refNames(*req.Tags)
		update.Tags = &names
	}
	if req.Ingredients != nil {
		names := refNames(*req.Ingredients)
		update.Ingredients = &names
	}

	recipe, err := h.recipeService.Update(c.Request().Context(), userID, id, update)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, newRecipeDetail(recipe))
}

// Delete godoc
// @Summary Delete one of the caller's recipes
// @Tags recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.recipeService.Delete(c.Request().Context(), userID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadImage godoc
// @Summary Upload an image for one of the caller's recipes
// @Tags recipes
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param image formData file true "Image file"
// @Success 200 {object} UploadImageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/recipes/{id}/upload-image [post]
func (h *RecipeHandler) UploadImage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "image file is required", Code: "IMAGE_REQUIRED",
		})
	}
	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "unable to read image file", Code: "IMAGE_UNREADABLE",
		})
	}
	defer src.Close()

	recipe, err := h.recipeService.UploadImage(c.Request().Context(), userID, id, src)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, UploadImageResponse{ID: recipe.ID, Image: recipe.Image})
}

func refNames(refs []NamedRef) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return names
}

// parseID reads the :id path parameter. A malformed id cannot match any
// row, so it reports not-found rather than a separate error class.
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "not found", Code: "NOT_FOUND",
		})
	}
	return uint(id), nil
}

// parseIDList parses a comma-separated id list query parameter. An empty
// parameter means no filtering.
func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
