package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/smith-matt-7272/recipe-app-api/internal/errors"
	"github.com/smith-matt-7272/recipe-app-api/internal/model"
	"github.com/smith-matt-7272/recipe-app-api/internal/service"
)

// TagHandler handles tag list/rename/delete. There is no create
// endpoint; tags appear through recipe writes.
type TagHandler struct {
	tagService service.TagService
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// TagResponse is the serialized tag shape.
type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RenameRequest carries a tag or ingredient rename.
type RenameRequest struct {
	Name string `json:"name" validate:"required"`
}

func newTagResponse(tag *model.Tag) TagResponse {
	return TagResponse{ID: tag.ID, Name: tag.Name}
}

// List godoc
// @Summary List the caller's tags, name descending
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param assigned_only query int false "1 to list only tags attached to a recipe"
// @Success 200 {array} TagResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipe/tags [get]
func (h *TagHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	tags, err := h.tagService.List(c.Request().Context(), userID, assignedOnly(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := make([]TagResponse, 0, len(tags))
	for i := range tags {
		resp = append(resp, newTagResponse(&tags[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Rename one of the caller's tags
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Param request body RenameRequest true "New name"
// @Success 200 {object} TagResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/tags/{id} [patch]
func (h *TagHandler) Update(c echo.Context) error {
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

	tag, err := h.tagService.Rename(c.Request().Context(), userID, id, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, newTagResponse(tag))
}

// Delete godoc
// @Summary Delete one of the caller's tags
// @Tags tags
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipe/tags/{id} [delete]
func (h *TagHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.tagService.Delete(c.Request().Context(), userID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

// assignedOnly reads the 0/1 assigned_only query parameter; anything
// unparsable counts as false.
func assignedOnly(c echo.Context) bool {
	v, err := strconv.ParseBool(c.QueryParam("assigned_only"))
	return err == nil && v
}
