package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"backoffice/internal/analytics"
	"backoffice/internal/models"
	"backoffice/internal/orders"
)

// analyticsRange reads the from/to query params, defaulting to the last 30
// days when absent.
func analyticsRange(c *gin.Context) (time.Time, time.Time) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)
	if parsed := parseDateParam(c.Query("from")); parsed != nil {
		from = *parsed
	}
	if parsed := parseDateParam(c.Query("to")); parsed != nil {
		to = *parsed
	}
	return from, to
}

func GetProductsByPeriod(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/analytics/products"
		defer handlePanic(c, route)

		from, to := analyticsRange(c)
		status := analytics.ParseStatusFilter(c.Query("status"))
		src := orders.CollectionSource{Coll: db.Collection("orders")}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		rows, err := analytics.ProductsByPeriod(ctx, src, from, to, status)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not compute analytics")
			return
		}

		c.JSON(http.StatusOK, rows)
	}
}

func GetPaymentsByPeriod(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/analytics/payments"
		defer handlePanic(c, route)

		from, to := analyticsRange(c)
		status := analytics.ParseStatusFilter(c.Query("status"))
		src := orders.CollectionSource{Coll: db.Collection("orders")}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		rows, err := analytics.PaymentsByPeriod(ctx, src, from, to, status)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not compute analytics")
			return
		}

		c.JSON(http.StatusOK, rows)
	}
}

func GetTopProducts(db *mongo.Database) gin.HandlerFunc {
	return topHandler(db, "GET /admin/api/analytics/top/products", analytics.TopProducts)
}

func GetTopCategories(db *mongo.Database) gin.HandlerFunc {
	return topHandler(db, "GET /admin/api/analytics/top/categories", analytics.TopCategories)
}

func GetTopPayments(db *mongo.Database) gin.HandlerFunc {
	return topHandler(db, "GET /admin/api/analytics/top/payments", analytics.TopPayments)
}

func topHandler(
	db *mongo.Database,
	route string,
	compute func(context.Context, orders.Source, analytics.StatusFilter, int) ([]models.TopEntry, error),
) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handlePanic(c, route)

		status := analytics.ParseStatusFilter(c.Query("status"))
		limit := parseIntParam(c.Query("limit"), analytics.DefaultTopLimit)
		src := orders.CollectionSource{Coll: db.Collection("orders")}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		entries, err := compute(ctx, src, status, limit)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not compute analytics")
			return
		}

		c.JSON(http.StatusOK, entries)
	}
}
