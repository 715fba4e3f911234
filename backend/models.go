package backend

// Wire types for the restaurant platform API. Field names follow the
// platform's JSON exactly, including the Mongo-style "_id" keys.

type OrderUser struct {
	ID       string `json:"_id,omitempty"`
	Username string `json:"username"`
}

type OrderRestaurant struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
}

type OrderItem struct {
	MenuItem string  `json:"menuItem,omitempty"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Order struct {
	ID                  string           `json:"_id"`
	User                *OrderUser       `json:"user,omitempty"`
	Restaurant          *OrderRestaurant `json:"restaurant,omitempty"`
	Items               []OrderItem      `json:"items"`
	TotalPrice          float64          `json:"totalPrice"`
	Discount            float64          `json:"discount"`
	FinalTotal          float64          `json:"finalTotal"`
	PaymentMethod       string           `json:"paymentMethod"`
	SpecialInstructions string           `json:"specialInstructions,omitempty"`
	OrderStatus         OrderStatus      `json:"orderStatus"`
}

// TotalsConsistent reports whether finalTotal matches totalPrice minus
// discount. The platform is assumed to maintain this; the console only
// logs when it does not hold.
func (o Order) TotalsConsistent() bool {
	const epsilon = 0.005
	diff := o.TotalPrice - o.Discount - o.FinalTotal
	return diff < epsilon && diff > -epsilon
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type OperatingHours struct {
	Monday    DayHours `json:"monday"`
	Tuesday   DayHours `json:"tuesday"`
	Wednesday DayHours `json:"wednesday"`
	Thursday  DayHours `json:"thursday"`
	Friday    DayHours `json:"friday"`
	Saturday  DayHours `json:"saturday"`
	Sunday    DayHours `json:"sunday"`
}

type Restaurant struct {
	ID             string         `json:"_id,omitempty"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Cuisine        string         `json:"cuisine"`
	Address        Address        `json:"address"`
	ContactNumber  string         `json:"contactNumber"`
	Email          string         `json:"email"`
	OperatingHours OperatingHours `json:"operatingHours"`
	IsActive       bool           `json:"isActive"`
}

type DietaryInfo struct {
	IsVegetarian bool `json:"isVegetarian"`
	IsVegan      bool `json:"isVegan"`
	IsGlutenFree bool `json:"isGlutenFree"`
	IsSpicy      bool `json:"isSpicy"`
}

type Customization struct {
	Name     string   `json:"name"`
	Options  []string `json:"options"`
	Required bool     `json:"required"`
}

type MenuItem struct {
	ID              string          `json:"_id,omitempty"`
	Restaurant      string          `json:"restaurant,omitempty"`
	Name            string          `json:"name"`
	Price           float64         `json:"price"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	DietaryInfo     DietaryInfo     `json:"dietaryInfo"`
	Images          []string        `json:"images,omitempty"`
	IsAvailable     bool            `json:"isAvailable"`
	PreparationTime int             `json:"preparationTime,omitempty"`
	Customizations  []Customization `json:"customizations,omitempty"`
}

// MenuCategories are the categories the platform accepts for a menu item.
var MenuCategories = []string{"Appetizer", "Main Course", "Dessert", "Beverage", "Sides"}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the payload of POST /auth/login.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type SalesReport struct {
	TotalSales  float64 `json:"totalSales"`
	TotalOrders int     `json:"totalOrders"`
}

// AverageOrderValue derives the overview figure the dashboard shows next to
// the raw totals. Zero orders yield zero, not a division error.
func (s SalesReport) AverageOrderValue() float64 {
	if s.TotalOrders == 0 {
		return 0
	}
	return s.TotalSales / float64(s.TotalOrders)
}

// PopularItem is one row of the popular-items aggregation. The platform
// groups by item name and exposes it under "_id".
type PopularItem struct {
	Name      string `json:"_id"`
	TotalSold int    `json:"totalSold"`
}
