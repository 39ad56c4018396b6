package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"backoffice/internal/clients"
	"backoffice/internal/orders"
)

func GetClients(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/clients"
		defer handlePanic(c, route)

		src := orders.CollectionSource{Coll: db.Collection("orders")}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		list, err := clients.Categorize(ctx, src, time.Now().UTC())
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, clients.ErrCategorize.Error())
			return
		}

		behavior := strings.TrimSpace(c.Query("behaviorCategory"))
		spending := strings.TrimSpace(c.Query("spendingCategory"))
		list = clients.Filter(list, behavior, spending)

		c.JSON(http.StatusOK, gin.H{
			"clients": clients.TableRows(list),
			"total":   len(list),
		})
	}
}

func GetClientStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/clients/stats"
		defer handlePanic(c, route)

		src := orders.CollectionSource{Coll: db.Collection("orders")}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		list, err := clients.Categorize(ctx, src, time.Now().UTC())
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, clients.ErrCategorize.Error())
			return
		}

		c.JSON(http.StatusOK, clients.Stats(list))
	}
}
