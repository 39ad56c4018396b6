package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backoffice/internal/export"
	"backoffice/internal/models"
	"backoffice/internal/orders"
)

/* =========================
   REQUEST DTOs
========================= */

type itemOptionRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type orderItemRequest struct {
	Name    string              `json:"name" binding:"required"`
	Options []itemOptionRequest `json:"options"`
}

type addressRequest struct {
	Address          string `json:"address"`
	City             string `json:"city"`
	Phone            string `json:"phone"`
	BetweenStreets   string `json:"betweenStreets"`
	FloorNumber      string `json:"floorNumber"`
	DepartmentNumber string `json:"departmentNumber"`
}

type orderUserRequest struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
}

type createOrderRequest struct {
	Status        string             `json:"status"`
	Total         float64            `json:"total"`
	SubTotal      float64            `json:"subTotal"`
	ShippingPrice float64            `json:"shippingPrice"`
	PaymentMethod string             `json:"paymentMethod"`
	OrderType     string             `json:"orderType"`
	Notes         string             `json:"notes"`
	NotesOwn      string             `json:"notesOwn"`
	DeliveryDay   string             `json:"deliveryDay"`
	Address       addressRequest     `json:"address"`
	User          orderUserRequest   `json:"user"`
	Items         []orderItemRequest `json:"items"`
}

// orderPatchRequest lists exactly which fields an admin may mutate. Pointer
// fields distinguish "not sent" from zero values.
type orderPatchRequest struct {
	Status        *string         `json:"status"`
	Total         *float64        `json:"total"`
	SubTotal      *float64        `json:"subTotal"`
	ShippingPrice *float64        `json:"shippingPrice"`
	PaymentMethod *string         `json:"paymentMethod"`
	OrderType     *string         `json:"orderType"`
	Notes         *string         `json:"notes"`
	NotesOwn      *string         `json:"notesOwn"`
	DeliveryDay   *string         `json:"deliveryDay"`
	Address       *addressRequest `json:"address"`
}

/* =========================
   LIST + EXPORT
========================= */

func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders"
		defer handlePanic(c, route)

		params := orders.ListParams{
			PageIndex: parseIntParam(c.Query("pageIndex"), 0),
			PageSize:  parseIntParam(c.Query("pageSize"), 20),
			Search:    c.Query("search"),
			Sorting:   parseSortingParam(c.Query("sorting")),
			From:      parseDateParam(c.Query("from")),
			To:        parseDateParam(c.Query("to")),
			OrderType: strings.TrimSpace(c.Query("orderType")),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		data, total, pageCount, err := orders.List(ctx, db.Collection("orders"), params)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, orders.ErrFetchOrders.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders":    data,
			"total":     total,
			"pageCount": pageCount,
		})
	}
}

func ExportOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders/export"
		defer handlePanic(c, route)

		params := orders.ExportParams{
			Search:    c.Query("search"),
			From:      parseDateParam(c.Query("from")),
			To:        parseDateParam(c.Query("to")),
			OrderType: strings.TrimSpace(c.Query("orderType")),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		data, err := orders.ExportList(ctx, db.Collection("orders"), params)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, orders.ErrFetchOrders.Error())
			return
		}

		workbook, err := export.OrdersWorkbook(data)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not build export")
			return
		}
		defer workbook.Close()

		filename := "pedidos-" + time.Now().Format("2006-01-02") + ".xlsx"
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := workbook.Write(c.Writer); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not write export")
			return
		}
	}
}

/* =========================
   CREATE
========================= */

func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/orders"
		defer handlePanic(c, route)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, "invalid request body")
			return
		}

		order, err := buildOrderFromRequest(req, time.Now())
		if err != nil {
			respondValidationError(c, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = id
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
	}
}

// buildOrderFromRequest validates a create payload and shapes the document.
// Validation failures come back as plain errors for the structured-failure
// response; nothing is thrown past the handler boundary.
func buildOrderFromRequest(req createOrderRequest, now time.Time) (models.Order, error) {
	if len(req.Items) == 0 {
		return models.Order{}, errors.New("at least one item is required")
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if strings.TrimSpace(item.Name) == "" {
			return models.Order{}, errors.New("item name is required")
		}
		if len(item.Options) == 0 {
			return models.Order{}, errors.New("item " + item.Name + " needs at least one option")
		}
		options := make([]models.ItemOption, 0, len(item.Options))
		for _, option := range item.Options {
			if option.Quantity <= 0 {
				return models.Order{}, errors.New("option quantity must be greater than zero")
			}
			options = append(options, models.ItemOption{
				Name:     strings.TrimSpace(option.Name),
				Price:    option.Price,
				Quantity: option.Quantity,
			})
		}
		items = append(items, models.OrderItem{
			Name:    strings.TrimSpace(item.Name),
			Options: options,
		})
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}
	if !models.ValidStatus(status) {
		return models.Order{}, errors.New("invalid status")
	}

	orderType := req.OrderType
	if orderType == "" {
		orderType = models.OrderTypeRetail
	}
	if !models.ValidOrderType(orderType) {
		return models.Order{}, errors.New("invalid order type")
	}

	if strings.TrimSpace(req.User.Email) == "" && strings.TrimSpace(req.User.UserID) == "" {
		return models.Order{}, errors.New("user email or id is required")
	}

	deliveryDay := now
	if req.DeliveryDay != "" {
		parsed := parseDateParam(req.DeliveryDay)
		if parsed == nil {
			return models.Order{}, errors.New("invalid delivery day")
		}
		deliveryDay = *parsed
	}

	return models.Order{
		Status:        status,
		Total:         req.Total,
		SubTotal:      req.SubTotal,
		ShippingPrice: req.ShippingPrice,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		OrderType:     orderType,
		Notes:         strings.TrimSpace(req.Notes),
		NotesOwn:      strings.TrimSpace(req.NotesOwn),
		Address: models.Address{
			Address:          strings.TrimSpace(req.Address.Address),
			City:             strings.TrimSpace(req.Address.City),
			Phone:            strings.TrimSpace(req.Address.Phone),
			BetweenStreets:   strings.TrimSpace(req.Address.BetweenStreets),
			FloorNumber:      strings.TrimSpace(req.Address.FloorNumber),
			DepartmentNumber: strings.TrimSpace(req.Address.DepartmentNumber),
		},
		User: models.OrderUser{
			UserID:   strings.TrimSpace(req.User.UserID),
			Name:     strings.TrimSpace(req.User.Name),
			LastName: strings.TrimSpace(req.User.LastName),
			Email:    strings.ToLower(strings.TrimSpace(req.User.Email)),
		},
		Items:       items,
		DeliveryDay: deliveryDay,
		CreatedAt:   now,
	}, nil
}

/* =========================
   GET ONE
========================= */

func GetOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

/* =========================
   UPDATE
========================= */

func UpdateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/orders/:id"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
			return
		}

		var req orderPatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, "invalid request body")
			return
		}

		updateSet, err := orderPatchSet(req)
		if err != nil {
			respondValidationError(c, err.Error())
			return
		}
		if len(updateSet) == 0 {
			respondValidationError(c, "no fields to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").UpdateOne(
			ctx,
			bson.M{"_id": orderID},
			bson.M{"$set": updateSet},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "order not found"})
			return
		}

		var updated models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&updated); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": updated})
	}
}

func orderPatchSet(req orderPatchRequest) (bson.M, error) {
	updateSet := bson.M{}

	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			return nil, errors.New("invalid status")
		}
		updateSet["status"] = *req.Status
	}
	if req.Total != nil {
		updateSet["total"] = *req.Total
	}
	if req.SubTotal != nil {
		updateSet["subTotal"] = *req.SubTotal
	}
	if req.ShippingPrice != nil {
		updateSet["shippingPrice"] = *req.ShippingPrice
	}
	if req.PaymentMethod != nil {
		updateSet["paymentMethod"] = strings.TrimSpace(*req.PaymentMethod)
	}
	if req.OrderType != nil {
		if !models.ValidOrderType(*req.OrderType) {
			return nil, errors.New("invalid order type")
		}
		updateSet["orderType"] = *req.OrderType
	}
	if req.Notes != nil {
		updateSet["notes"] = strings.TrimSpace(*req.Notes)
	}
	if req.NotesOwn != nil {
		updateSet["notesOwn"] = strings.TrimSpace(*req.NotesOwn)
	}
	if req.DeliveryDay != nil {
		parsed := parseDateParam(*req.DeliveryDay)
		if parsed == nil {
			return nil, errors.New("invalid delivery day")
		}
		updateSet["deliveryDay"] = *parsed
	}
	if req.Address != nil {
		updateSet["address"] = models.Address{
			Address:          strings.TrimSpace(req.Address.Address),
			City:             strings.TrimSpace(req.Address.City),
			Phone:            strings.TrimSpace(req.Address.Phone),
			BetweenStreets:   strings.TrimSpace(req.Address.BetweenStreets),
			FloorNumber:      strings.TrimSpace(req.Address.FloorNumber),
			DepartmentNumber: strings.TrimSpace(req.Address.DepartmentNumber),
		}
	}

	return updateSet, nil
}

/* =========================
   STATUS + DELETE
========================= */

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
			return
		}

		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, "status is required")
			return
		}
		if !models.ValidStatus(req.Status) {
			respondValidationError(c, "invalid status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").UpdateOne(
			ctx,
			bson.M{"_id": orderID},
			bson.M{"$set": bson.M{"status": req.Status}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{"_id": orderID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}
