package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smith-matt-7272/recipe-app-api/internal/errors"
	"github.com/smith-matt-7272/recipe-app-api/internal/model"
	"github.com/smith-matt-7272/recipe-app-api/internal/service"
)

// IngredientHandler mirrors TagHandler for ingredients.
type IngredientHandler struct {
	ingredientService service.IngredientService
}

// NewIngredientHandler creates a new ingredient handler.
func NewIngredientHandler(ingredientService service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// IngredientResponse is the serialized ingredient shape.
type IngredientResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newIngredientResponse(ingredient *model.Ingredient) IngredientResponse {
	return IngredientResponse{ID: ingredient.ID, Name: ingredient.Name}
}

// List godoc
// @Summary List the caller's ingredients, name descending
// @Tags ingredients
// @Produce json
// @Security BearerAuth
// @Param assigned_only query int false "1 to list only ingredients attached to a recipe"
// @Success 200 {array} IngredientResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipe/ingredients [get]
func (h *IngredientHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	ingredients, err := h.ingredientService.List(c.Request().Context(), userID, assignedOnly(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := make([]IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		resp = append(resp, newIngredientResponse(&ingredients[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Rename one of the caller's ingredients
// @Tags ingredients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Param request body RenameRequest true "New name"
// @Success 200 {object} IngredientResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/ingredients/{id} [patch]
func (h *IngredientHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req RenameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ingredient, err := h.ingredientService.Rename(c.Request().Context(), userID, id, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, newIngredientResponse(ingredient))
}

// Delete godoc
// @Summary Delete one of the caller's ingredients
// @Tags ingredients
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/ingredients/{id} [delete]
func (h *IngredientHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.ingredientService.Delete(c.Request().Context(), userID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}
