package dashboard

import (
	"rental-booking/logger"
	productModel "rental-booking/models/product"
	rentalModel "rental-booking/models/rental"
	"rental-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardController aggregates the admin landing-page numbers.
type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// Stats is the headline rollup. Revenue counts orders that reached
// APPROVED, IN_USE or RETURNED; money still in the pipeline before
// approval is not revenue yet.
type Stats struct {
	OrdersToday         int64            `json:"orders_today"`
	OrdersThisMonth     int64            `json:"orders_this_month"`
	TotalRevenue        decimal.Decimal  `json:"total_revenue"`
	RevenueThisMonth    decimal.Decimal  `json:"revenue_this_month"`
	PendingConfirmation int64            `json:"pending_confirmation"`
	ActiveRentals       int64            `json:"active_rentals"`
	OrdersByStatus      map[string]int64 `json:"orders_by_status"`
}

// revenueStatuses are the statuses whose orders count toward revenue.
var revenueStatuses = []rentalModel.Status{
	rentalModel.StatusApproved,
	rentalModel.StatusWaitingDelivery,
	rentalModel.StatusInUse,
	rentalModel.StatusReturned,
}

// TopProduct is one row of the most-rented listing.
type TopProduct struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	OrderCount  int64  `json:"order_count"`
}

// DayRevenue is one revenue-chart bucket. Date is "2006-01-02".
type DayRevenue struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Stats returns today's and this month's order counts, total and monthly
// revenue, pipeline counts and the per-status breakdown.
func (dc *DashboardController) Stats(c *fiber.Ctx) error {
	today := now.BeginningOfDay()
	monthStart := now.BeginningOfMonth()

	var stats Stats

	err := dc.DB.Model(&rentalModel.RentalOrder{}).
		Where("created_at >= ?", today).
		Count(&stats.OrdersToday).Error
	if err != nil {
		return dc.dbError(c, err)
	}

	err = dc.DB.Model(&rentalModel.RentalOrder{}).
		Where("created_at >= ?", monthStart).
		Count(&stats.OrdersThisMonth).Error
	if err != nil {
		return dc.dbError(c, err)
	}

	var totalRevenue decimal.NullDecimal
	err = dc.DB.Model(&rentalModel.RentalOrder{}).
		Where("status IN ?", revenueStatuses).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&totalRevenue).Error
	if err != nil {
		return dc.dbError(c, err)
	}
	stats.TotalRevenue = decimal.Zero
	if totalRevenue.Valid {
		stats.TotalRevenue = totalRevenue.Decimal
	}

	var revenue decimal.NullDecimal
	err = dc.DB.Model(&rentalModel.RentalOrder{}).
		Where("status IN ? AND created_at >= ?", revenueStatuses, monthStart).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&revenue).Error
	if err != nil {
		return dc.dbError(c, err)
	}
	stats.RevenueThisMonth = decimal.Zero
	if revenue.Valid {
		stats.RevenueThisMonth = revenue.Decimal
	}

	err = dc.DB.Model(&rentalModel.RentalOrder{}).
		Where("status = ?", rentalModel.StatusWaitingConfirmation).
		Count(&stats.PendingConfirmation).Error
	if err != nil {
		return dc.dbError(c, err)
	}

	err = dc.DB.Model(&rentalModel.RentalOrder{}).
		Where("status = ?", rentalModel.StatusInUse).
		Count(&stats.ActiveRentals).Error
	if err != nil {
		return dc.dbError(c, err)
	}

	stats.OrdersByStatus = make(map[string]int64, len(rentalModel.AllStatuses()))
	for _, status := range rentalModel.AllStatuses() {
		var count int64
		err = dc.DB.Model(&rentalModel.RentalOrder{}).
			Where("status = ?", status).
			Count(&count).Error
		if err != nil {
			return dc.dbError(c, err)
		}
		stats.OrdersByStatus[status.String()] = count
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Dashboard stats retrieved successfully",
		Data:    stats,
	})
}

// RecentOrders returns the latest ten orders across all statuses.
func (dc *DashboardController) RecentOrders(c *fiber.Ctx) error {
	var orders []rentalModel.RentalOrder
	err := dc.DB.
		Preload("Customer").
		Preload("Product").
		Order("created_at DESC").
		Limit(10).
		Find(&orders).Error
	if err != nil {
		return dc.dbError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Recent orders retrieved successfully",
		Data:    orders,
	})
}

// TopProducts returns the five most-rented products, excluding cancelled
// and rejected orders.
func (dc *DashboardController) TopProducts(c *fiber.Ctx) error {
	var rows []TopProduct
	err := dc.DB.Model(&rentalModel.RentalOrder{}).
		Select("rental_orders.product_id, products.name AS product_name, COUNT(*) AS order_count").
		Joins("JOIN products ON products.id = rental_orders.product_id").
		Where("rental_orders.status NOT IN ?", []rentalModel.Status{
			rentalModel.StatusCancelled,
			rentalModel.StatusRejected,
		}).
		Group("rental_orders.product_id, products.name").
		Order("order_count DESC").
		Limit(5).
		Scan(&rows).Error
	if err != nil {
		return dc.dbError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Top products retrieved successfully",
		Data:    rows,
	})
}

// RevenueChart returns daily revenue buckets, oldest first. Days with no
// orders appear with zero revenue. ?days=N controls the window (default 7,
// max 90).
func (dc *DashboardController) RevenueChart(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days < 1 || days > 90 {
		days = 7
	}

	buckets := make([]DayRevenue, 0, days)
	dayStart := now.BeginningOfDay().AddDate(0, 0, -(days - 1))

	for i := 0; i < days; i++ {
		nextDay := dayStart.AddDate(0, 0, 1)

		var revenue decimal.NullDecimal
		err := dc.DB.Model(&rentalModel.RentalOrder{}).
			Where("status IN ? AND created_at >= ? AND created_at < ?",
				revenueStatuses, dayStart, nextDay).
			Select("COALESCE(SUM(total_price), 0)").
			Scan(&revenue).Error
		if err != nil {
			return dc.dbError(c, err)
		}

		bucket := DayRevenue{Date: dayStart.Format("2006-01-02"), Revenue: decimal.Zero}
		if revenue.Valid {
			bucket.Revenue = revenue.Decimal
		}
		buckets = append(buckets, bucket)
		dayStart = nextDay
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Revenue chart retrieved successfully",
		Data:    buckets,
	})
}

// ProductStatus returns the catalog broken down by product status.
func (dc *DashboardController) ProductStatus(c *fiber.Ctx) error {
	counts := make(map[string]int64, 3)
	for _, status := range []productModel.Status{
		productModel.StatusAvailable,
		productModel.StatusUnavailable,
		productModel.StatusMaintenance,
	} {
		var count int64
		err := dc.DB.Model(&productModel.Product{}).
			Where("status = ?", status).
			Count(&count).Error
		if err != nil {
			return dc.dbError(c, err)
		}
		counts[string(status)] = count
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Product status breakdown retrieved successfully",
		Data:    counts,
	})
}

func (dc *DashboardController) dbError(c *fiber.Ctx, err error) error {
	logger.Error("Dashboard query failed", err)
	return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
		Status:  fiber.StatusInternalServerError,
		Message: "Database error",
	})
}
