package backend

import (
	"context"
	"fmt"
	"net/http"
)

// ListMenuItems fetches the menu of one restaurant.
func (c *Client) ListMenuItems(ctx context.Context, restaurantID string) ([]MenuItem, error) {
	var items []MenuItem
	path := fmt.Sprintf("/%s/menu-items", restaurantID)
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateMenuItem submits a new item and returns the stored record with its
// server-assigned identifier.
func (c *Client) CreateMenuItem(ctx context.Context, restaurantID string, item MenuItem) (*MenuItem, error) {
	var created MenuItem
	path := fmt.Sprintf("/%s/menu-items", restaurantID)
	if err := c.do(ctx, http.MethodPost, path, item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateMenuItem replaces an item wholesale and returns the stored record.
func (c *Client) UpdateMenuItem(ctx context.Context, itemID string, item MenuItem) (*MenuItem, error) {
	var updated MenuItem
	path := fmt.Sprintf("/menu-items/%s", itemID)
	if err := c.do(ctx, http.MethodPut, path, item, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, itemID string) error {
	path := fmt.Sprintf("/menu-items/%s", itemID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
