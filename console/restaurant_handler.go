package main

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AffanWajid12/resturant-console/backend"
)

func restaurantSearchFields(r backend.Restaurant) []string {
	return []string{r.Name, r.Cuisine}
}

// GetRestaurants godoc
//
// @Summary List the signed-in owner's restaurants
// @Tags restaurants
// @Produce json
// @Param search query string false "Filter the already-loaded list without re-fetching"
// @Success 200 {object} RestaurantsView
// @Router /v1/restaurants [get]
func (h *MainHandler) GetRestaurants(c echo.Context) error {
	ctx := c.Request().Context()
	views := h.viewsFor(h.session(c).ID)

	if term := c.QueryParam("search"); term != "" {
		return c.JSON(http.StatusOK, RestaurantsView{
			Restaurants: views.restaurants.Filter(term, restaurantSearchFields),
			Error:       views.restaurants.Err(),
		})
	}

	restaurants, err := h.sessionClient(c).OwnerRestaurants(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch restaurants", slog.Any("err", err))
		views.restaurants.Fail(upstreamMessage(err, "Failed to fetch restaurants"))
		return c.JSON(http.StatusOK, RestaurantsView{Restaurants: []backend.Restaurant{}, Error: views.restaurants.Err()})
	}

	views.restaurants.Replace(restaurants)
	return c.JSON(http.StatusOK, RestaurantsView{Restaurants: views.restaurants.Items()})
}

// CreateRestaurant godoc
//
// @Summary Register a new restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Param restaurant body RestaurantRequest true "Restaurant"
// @Success 201 {object} backend.Restaurant
// @Failure 422 {object} ErrorResponse
// @Router /v1/restaurants [post]
func (h *MainHandler) CreateRestaurant(c echo.Context) error {
	ctx := c.Request().Context()

	var req RestaurantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.sessionClient(c).CreateRestaurant(ctx, req.toModel())
	if err != nil {
		slog.ErrorContext(ctx, "failed to create restaurant", slog.Any("err", err))
		return relayUpstreamError(c, err)
	}

	h.viewsFor(h.session(c).ID).restaurants.Append(*created)

	return c.JSON(http.StatusCreated, created)
}

// UpdateRestaurant godoc
//
// @Summary Replace a restaurant's details
// @Tags restaurants
// @Accept json
// @Produce json
// @Param id path string true "Restaurant id"
// @Param restaurant body RestaurantRequest true "Restaurant"
// @Success 200 {object} backend.Restaurant
// @Failure 422 {object} ErrorResponse
// @Router /v1/restaurants/{id} [put]
func (h *MainHandler) UpdateRestaurant(c echo.Context) error {
	ctx := c.Request().Context()
	restaurantID := c.Param("id")

	var req RestaurantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.sessionClient(c).UpdateRestaurant(ctx, restaurantID, req.toModel())
	if err != nil {
		slog.ErrorContext(ctx, "failed to update restaurant",
			slog.String("restaurant_id", restaurantID),
			slog.Any("err", err),
		)
		return relayUpstreamError(c, err)
	}

	h.viewsFor(h.session(c).ID).restaurants.Update(*updated)

	return c.JSON(http.StatusOK, updated)
}

// DeleteRestaurant godoc
//
// @Summary Delete a restaurant
// @Tags restaurants
// @Produce json
// @Param id path string true "Restaurant id"
// @Param confirm query bool true "Must be true; deletion requires explicit confirmation"
// @Success 204 {string} string ""
// @Failure 400 {object} ErrorResponse
// @Router /v1/restaurants/{id} [delete]
func (h *MainHandler) DeleteRestaurant(c echo.Context) error {
	ctx := c.Request().Context()
	restaurantID := c.Param("id")

	if c.QueryParam("confirm") != "true" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "deletion requires confirm=true"})
	}

	if err := h.sessionClient(c).DeleteRestaurant(ctx, restaurantID); err != nil {
		slog.ErrorContext(ctx, "failed to delete restaurant",
			slog.String("restaurant_id", restaurantID),
			slog.Any("err", err),
		)
		return relayUpstreamError(c, err)
	}

	h.viewsFor(h.session(c).ID).restaurants.Remove(restaurantID)

	return c.NoContent(http.StatusNoContent)
}
