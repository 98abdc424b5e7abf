package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// ChangePercent compares this month with last month.
type ChangePercent struct {
	Revenue int `json:"revenue"`
	Product int `json:"product"`
	User    int `json:"user"`
	Order   int `json:"order"`
}

// Counts are all-time totals.
type Counts struct {
	Revenue float64 `json:"revenue"`
	User    int64   `json:"user"`
	Product int64   `json:"product"`
	Order   int64   `json:"order"`
}

// Chart holds six-month order histograms.
type Chart struct {
	Order   []int     `json:"order"`
	Revenue []float64 `json:"revenue"`
}

// UserRatio splits users by gender.
type UserRatio struct {
	Male   int64 `json:"male"`
	Female int64 `json:"female"`
}

// LatestTransaction summarises a recent order.
type LatestTransaction struct {
	ID       primitive.ObjectID `json:"_id"`
	Discount float64            `json:"discount"`
	Amount   float64            `json:"amount"`
	Quantity int                `json:"quantity"`
	Status   OrderStatus        `json:"status"`
}

// DashboardStats is the payload cached under admin-stats.
type DashboardStats struct {
	CategoryCount     []map[string]int    `json:"categoryCount"`
	ChangePercent     ChangePercent       `json:"changePercent"`
	Counts            Counts              `json:"count"`
	Chart             Chart               `json:"chart"`
	UserRatio         UserRatio           `json:"userRatio"`
	LatestTransaction []LatestTransaction `json:"latestTransaction"`
}

// OrderFullfillment counts orders per status.
type OrderFullfillment struct {
	Processing int64 `json:"processing"`
	Shipped    int64 `json:"shipped"`
	Delivered  int64 `json:"delivered"`
}

// StockAvailability splits products by whether they are in stock.
type StockAvailability struct {
	InStock    int64 `json:"inStock"`
	OutOfStock int64 `json:"outOfStock"`
}

// RevenueDistribution breaks gross revenue into its parts.
type RevenueDistribution struct {
	NetMargin      float64 `json:"netMargin"`
	Discount       float64 `json:"discount"`
	ProductionCost float64 `json:"productionCost"`
	Burnt          float64 `json:"burnt"`
	MarketingCost  float64 `json:"marketingCost"`
}

// UsersAgeGroup buckets users by age: teen under 20, adult 20 to 39, old 40 and over.
type UsersAgeGroup struct {
	Teen  int `json:"teen"`
	Adult int `json:"adult"`
	Old   int `json:"old"`
}

// AdminCustomer splits users by role.
type AdminCustomer struct {
	Admin    int64 `json:"admin"`
	Customer int64 `json:"customer"`
}

// PieCharts is the payload cached under admin-pie-charts.
type PieCharts struct {
	OrderFullfillment   OrderFullfillment   `json:"orderFullfillment"`
	ProductCategories   []map[string]int    `json:"productCategories"`
	StockAvailability   StockAvailability   `json:"stockAvailability"`
	RevenueDistribution RevenueDistribution `json:"revenueDistribution"`
	UsersAgeGroup       UsersAgeGroup       `json:"usersAgeGroup"`
	AdminCustomer       AdminCustomer       `json:"adminCustomer"`
}

// BarCharts is the payload cached under admin-bar-charts.
type BarCharts struct {
	Products []int `json:"products"`
	Users    []int `json:"users"`
	Orders   []int `json:"orders"`
}

// LineCharts is the payload cached under admin-line-charts.
type LineCharts struct {
	Users    []int     `json:"users"`
	Products []int     `json:"products"`
	Discount []float64 `json:"discount"`
	Revenue  []float64 `json:"revenue"`
}
