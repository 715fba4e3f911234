package main

import (
	"time"

	"github.com/AffanWajid12/resturant-console/backend"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type MeResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type StatusUpdateRequest struct {
	OrderStatus string `json:"orderStatus" validate:"required"`
}

// OrdersView is what the order list screen renders: either the collection or
// an error string, never both.
type OrdersView struct {
	Orders []backend.Order `json:"orders"`
	Error  string          `json:"error,omitempty"`
}

type RestaurantsView struct {
	Restaurants []backend.Restaurant `json:"restaurants"`
	Error       string               `json:"error,omitempty"`
}

type MenuItemsView struct {
	MenuItems []backend.MenuItem `json:"menuItems"`
	Error     string             `json:"error,omitempty"`
}

type CustomizationRequest struct {
	Name     string   `json:"name" validate:"required"`
	Options  []string `json:"options" validate:"min=1,dive,required"`
	Required bool     `json:"required"`
}

type MenuItemRequest struct {
	Name            string                 `json:"name" validate:"required,min=2,max=100"`
	Price           float64                `json:"price" validate:"gte=0"`
	Description     string                 `json:"description" validate:"required,max=500"`
	Category        string                 `json:"category" validate:"required,oneof=Appetizer 'Main Course' Dessert Beverage Sides"`
	DietaryInfo     backend.DietaryInfo    `json:"dietaryInfo"`
	Images          []string               `json:"images" validate:"dive,required"`
	IsAvailable     bool                   `json:"isAvailable"`
	PreparationTime int                    `json:"preparationTime" validate:"gte=0"`
	Customizations  []CustomizationRequest `json:"customizations" validate:"dive"`
}

func (r MenuItemRequest) toModel() backend.MenuItem {
	customizations := make([]backend.Customization, 0, len(r.Customizations))
	for _, c := range r.Customizations {
		customizations = append(customizations, backend.Customization{
			Name:     c.Name,
			Options:  c.Options,
			Required: c.Required,
		})
	}

	return backend.MenuItem{
		Name:            r.Name,
		Price:           r.Price,
		Description:     r.Description,
		Category:        r.Category,
		DietaryInfo:     r.DietaryInfo,
		Images:          r.Images,
		IsAvailable:     r.IsAvailable,
		PreparationTime: r.PreparationTime,
		Customizations:  customizations,
	}
}

type RestaurantRequest struct {
	Name           string                 `json:"name" validate:"required,min=2,max=100"`
	Description    string                 `json:"description" validate:"required,max=1000"`
	Cuisine        string                 `json:"cuisine" validate:"required"`
	Address        backend.Address        `json:"address" validate:"required"`
	ContactNumber  string                 `json:"contactNumber" validate:"required"`
	Email          string                 `json:"email" validate:"required,email"`
	OperatingHours backend.OperatingHours `json:"operatingHours"`
	IsActive       bool                   `json:"isActive"`
}

func (r RestaurantRequest) toModel() backend.Restaurant {
	return backend.Restaurant{
		Name:           r.Name,
		Description:    r.Description,
		Cuisine:        r.Cuisine,
		Address:        r.Address,
		ContactNumber:  r.ContactNumber,
		Email:          r.Email,
		OperatingHours: r.OperatingHours,
		IsActive:       r.IsActive,
	}
}

type SalesReportRequest struct {
	RestaurantID string `json:"restaurantId" validate:"required"`
	Period       string `json:"period" validate:"required,oneof=day week month"`
}

type SalesReportResponse struct {
	TotalSales        float64 `json:"totalSales"`
	TotalOrders       int     `json:"totalOrders"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

type PopularItemsRequest struct {
	RestaurantID string `json:"restaurantId" validate:"required"`
}

type ExportRequest struct {
	RestaurantID string `json:"restaurantId" validate:"required"`
	Format       string `json:"format" validate:"required,oneof=csv json"`
}

// OrderEvent is fanned out to live subscribers after a confirmed status
// transition.
type OrderEvent struct {
	OrderID    string              `json:"order_id"`
	Status     backend.OrderStatus `json:"status"`
	ChangedBy  string              `json:"changed_by"`
	OccurredAt time.Time           `json:"occurred_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
