package handlers

import (
	"time"

	"github.com/anjiri1684/institute_backoffice/database"
	"github.com/anjiri1684/institute_backoffice/models"
	"github.com/gofiber/fiber/v2"
)

type monthlyCollection struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

type leadFunnelRow struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// GetDashboardSummary aggregates the numbers the back-office landing page
// shows: headcounts, fee collection totals, a monthly collection series and
// the lead funnel.
func GetDashboardSummary(c *fiber.Ctx) error {
	var activeStudents, ongoingBatches, openLeads int64
	database.DB.Model(&models.Student{}).Where("status = ?", "active").Count(&activeStudents)
	database.DB.Model(&models.Batch{}).Where("status = ?", "ongoing").Count(&ongoingBatches)
	database.DB.Model(&models.Lead{}).Where("status NOT IN ?", []string{"converted", "lost"}).Count(&openLeads)

	var totalCollected, totalOutstanding float64
	database.DB.Model(&models.Payment{}).
		Where("status = ?", models.PaymentCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalCollected)
	database.DB.Model(&models.Student{}).
		Select("COALESCE(SUM(fee_due), 0)").
		Scan(&totalOutstanding)

	since := time.Now().AddDate(0, -6, 0)
	var series []monthlyCollection
	database.DB.Model(&models.Payment{}).
		Where("status = ? AND payment_date >= ?", models.PaymentCompleted, since).
		Select("to_char(payment_date, 'YYYY-MM') AS month, COALESCE(SUM(amount), 0) AS total").
		Group("month").
		Order("month asc").
		Scan(&series)

	var funnel []leadFunnelRow
	database.DB.Model(&models.Lead{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&funnel)

	return c.JSON(fiber.Map{
		"active_students":    activeStudents,
		"ongoing_batches":    ongoingBatches,
		"open_leads":         openLeads,
		"total_collected":    totalCollected,
		"total_outstanding":  totalOutstanding,
		"monthly_collection": series,
		"lead_funnel":        funnel,
	})
}

// GetCollectionReport breaks fee collection down by payment method over an
// optional date range.
func GetCollectionReport(c *fiber.Ctx) error {
	query := database.DB.Model(&models.Payment{}).Where("status = ?", models.PaymentCompleted)

	if from := c.Query("from"); from != "" {
		if parsed, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("payment_date >= ?", parsed)
		}
	}
	if to := c.Query("to"); to != "" {
		if parsed, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("payment_date < ?", parsed.AddDate(0, 0, 1))
		}
	}

	type methodRow struct {
		PaymentMethod string  `json:"payment_method"`
		Count         int64   `json:"count"`
		Total         float64 `json:"total"`
	}
	var byMethod []methodRow
	query.Select("payment_method, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Group("payment_method").
		Order("total desc").
		Scan(&byMethod)

	return c.JSON(fiber.Map{"by_method": byMethod})
}

// GetDefaultersReport lists active students with an outstanding balance,
// largest first.
func GetDefaultersReport(c *fiber.Ctx) error {
	var students []models.Student
	err := database.DB.Preload("Course").Preload("Batch").
		Where("status = ? AND fee_due > 0", "active").
		Order("fee_due desc").
		Limit(c.QueryInt("limit", 50)).
		Find(&students).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch defaulters"})
	}

	return c.JSON(students)
}
