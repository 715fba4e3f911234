package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// OwnerRestaurants fetches the restaurants owned by the authenticated
// principal. The platform answers with either a bare array or an object
// wrapping a "restaurants" array, so both shapes are accepted.
func (c *Client) OwnerRestaurants(ctx context.Context) ([]Restaurant, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/restaurants/owner-restaurants", nil, &raw); err != nil {
		return nil, err
	}

	var restaurants []Restaurant
	if err := json.Unmarshal(raw, &restaurants); err == nil {
		return restaurants, nil
	}

	var wrapped struct {
		Restaurants []Restaurant `json:"restaurants"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("unexpected owner-restaurants payload: %w", err)
	}
	return wrapped.Restaurants, nil
}

func (c *Client) CreateRestaurant(ctx context.Context, restaurant Restaurant) (*Restaurant, error) {
	var created Restaurant
	if err := c.do(ctx, http.MethodPost, "/restaurants", restaurant, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateRestaurant(ctx context.Context, restaurantID string, restaurant Restaurant) (*Restaurant, error) {
	var updated Restaurant
	path := fmt.Sprintf("/restaurants/%s", restaurantID)
	if err := c.do(ctx, http.MethodPut, path, restaurant, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteRestaurant(ctx context.Context, restaurantID string) error {
	path := fmt.Sprintf("/restaurants/%s", restaurantID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
