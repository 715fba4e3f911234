package main

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AffanWajid12/resturant-console/backend"
)

func menuSearchFields(m backend.MenuItem) []string {
	return []string{m.Name, m.Category}
}

// GetMenuItems godoc
//
// @Summary List the menu of one restaurant
// @Tags menu
// @Produce json
// @Param restaurantId path string true "Restaurant id"
// @Param search query string false "Filter the already-loaded list without re-fetching"
// @Success 200 {object} MenuItemsView
// @Router /v1/restaurants/{restaurantId}/menu-items [get]
func (h *MainHandler) GetMenuItems(c echo.Context) error {
	ctx := c.Request().Context()
	restaurantID := c.Param("restaurantId")
	menu := h.viewsFor(h.session(c).ID).menuFor(restaurantID)

	if term := c.QueryParam("search"); term != "" {
		return c.JSON(http.StatusOK, MenuItemsView{
			MenuItems: menu.Filter(term, menuSearchFields),
			Error:     menu.Err(),
		})
	}

	items, err := h.sessionClient(c).ListMenuItems(ctx, restaurantID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch menu items",
			slog.String("restaurant_id", restaurantID),
			slog.Any("err", err),
		)
		menu.Fail(upstreamMessage(err, "Failed to fetch menu items"))
		return c.JSON(http.StatusOK, MenuItemsView{MenuItems: []backend.MenuItem{}, Error: menu.Err()})
	}

	menu.Replace(items)
	return c.JSON(http.StatusOK, MenuItemsView{MenuItems: menu.Items()})
}

// CreateMenuItem godoc
//
// @Summary Add a menu item to a restaurant
// @Tags menu
// @Accept json
// @Produce json
// @Param restaurantId path string true "Restaurant id"
// @Param item body MenuItemRequest true "Menu item"
// @Success 201 {object} backend.MenuItem
// @Failure 422 {object} ErrorResponse
// @Router /v1/restaurants/{restaurantId}/menu-items [post]
func (h *MainHandler) CreateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	restaurantID := c.Param("restaurantId")

	var req MenuItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.sessionClient(c).CreateMenuItem(ctx, restaurantID, req.toModel())
	if err != nil {
		slog.ErrorContext(ctx, "failed to create menu item", slog.Any("err", err))
		return relayUpstreamError(c, err)
	}

	// The collection changes only after the platform confirmed the record.
	h.viewsFor(h.session(c).ID).menuFor(restaurantID).Append(*created)

	return c.JSON(http.StatusCreated, created)
}

// UpdateMenuItem godoc
//
// @Summary Replace a menu item
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item id"
// @Param item body MenuItemRequest true "Menu item"
// @Success 200 {object} backend.MenuItem
// @Failure 422 {object} ErrorResponse
// @Router /v1/menu-items/{id} [put]
func (h *MainHandler) UpdateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	itemID := c.Param("id")

	var req MenuItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.sessionClient(c).UpdateMenuItem(ctx, itemID, req.toModel())
	if err != nil {
		slog.ErrorContext(ctx, "failed to update menu item", slog.String("item_id", itemID), slog.Any("err", err))
		return relayUpstreamError(c, err)
	}

	if menu, ok := h.viewsFor(h.session(c).ID).findMenuItem(itemID); ok {
		menu.Update(*updated)
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteMenuItem godoc
//
// @Summary Delete a menu item
// @Tags menu
// @Produce json
// @Param id path string true "Menu item id"
// @Param confirm query bool true "Must be true; deletion requires explicit confirmation"
// @Success 204 {string} string ""
// @Failure 400 {object} ErrorResponse
// @Router /v1/menu-items/{id} [delete]
func (h *MainHandler) DeleteMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	itemID := c.Param("id")

	if c.QueryParam("confirm") != "true" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "deletion requires confirm=true"})
	}

	if err := h.sessionClient(c).DeleteMenuItem(ctx, itemID); err != nil {
		slog.ErrorContext(ctx, "failed to delete menu item", slog.String("item_id", itemID), slog.Any("err", err))
		return relayUpstreamError(c, err)
	}

	// Removed locally only because the platform confirmed it.
	if menu, ok := h.viewsFor(h.session(c).ID).findMenuItem(itemID); ok {
		menu.Remove(itemID)
	}

	return c.NoContent(http.StatusNoContent)
}
