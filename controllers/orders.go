package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"backend/config"
	"backend/models"
	"backend/stock"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderController struct {
	DB    *config.Database
	Stock *stock.Adjuster
}

func NewOrderController(db *config.Database) *OrderController {
	return &OrderController{
		DB:    db,
		Stock: stock.NewAdjuster(&stock.MongoStore{Products: db.Products}),
	}
}

// validateCart enforces the input constraints the datastore cannot: a
// non-empty item list, positive quantities, non-negative prices, valid ids.
func validateCart(items []models.CartItem) error {
	if len(items) == 0 {
		return errors.New("order must contain at least one item")
	}
	for i, item := range items {
		if _, err := primitive.ObjectIDFromHex(item.ID); err != nil {
			return fmt.Errorf("item %d: invalid product id %q", i, item.ID)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d: quantity must be positive", i)
		}
		if item.Price < 0 {
			return fmt.Errorf("item %d: price must not be negative", i)
		}
	}
	return nil
}

// buildItemsSummary snapshots the cart into denormalized line items and
// returns the recomputed subtotal. Client-sent totals are ignored.
func buildItemsSummary(items []models.CartItem) ([]models.OrderItem, float64) {
	summary := make([]models.OrderItem, 0, len(items))
	var subtotal float64
	for _, item := range items {
		category := item.Category
		if category == "" {
			category = "Uncategorized"
		}
		lineTotal := float64(item.Quantity) * item.Price
		summary = append(summary, models.OrderItem{
			ProductID:  item.ID,
			Title:      item.Title,
			Quantity:   item.Quantity,
			UnitPrice:  item.Price,
			TotalPrice: lineTotal,
			Category:   category,
		})
		subtotal += lineTotal
	}
	return summary, subtotal
}

func cartLines(items []models.CartItem) ([]stock.Line, error) {
	lines := make([]stock.Line, 0, len(items))
	for _, item := range items {
		id, err := primitive.ObjectIDFromHex(item.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid product id %q", item.ID)
		}
		lines = append(lines, stock.Line{ProductID: id, Quantity: item.Quantity})
	}
	return lines, nil
}

func summaryLines(items []models.OrderItem) ([]stock.Line, error) {
	lines := make([]stock.Line, 0, len(items))
	for _, item := range items {
		id, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product id %q in stored order", item.ProductID)
		}
		lines = append(lines, stock.Line{ProductID: id, Quantity: item.Quantity})
	}
	return lines, nil
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input models.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateCart(input.Items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, subtotal := buildItemsSummary(input.Items)
	lines, err := cartLines(input.Items)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	order := models.Order{
		ID:            primitive.NewObjectID(),
		InvoiceNo:     input.InvoiceNo,
		Subtotal:      subtotal,
		Tax:           input.Tax,
		Discount:      input.Discount,
		Total:         subtotal + input.Tax - input.Discount,
		ItemsSummary:  summary,
		CustomerName:  input.CustomerName,
		PaymentMethod: input.PaymentMethod,
		CashierName:   input.CashierName,
		Status:        input.Status,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if order.InvoiceNo == "" {
		order.InvoiceNo = utils.GenerateInvoiceNo("INV")
	}
	if order.CustomerName == "" {
		order.CustomerName = "Walk-in Customer"
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = "Cash"
	}
	if order.CashierName == "" {
		order.CashierName = "Admin"
	}
	if order.Status == "" {
		order.Status = models.OrderStatusCompleted
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = oc.DB.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := oc.DB.Orders.InsertOne(sc, order); err != nil {
			return err
		}
		return oc.Stock.Apply(sc, lines)
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order with this invoice number already exists"})
			return
		}
		if errors.Is(err, stock.ErrProductNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order references an unknown product"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (oc *OrderController) GetAllOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := oc.DB.Orders.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders", "details": err.Error()})
		return
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err = oc.DB.Orders.FindOne(ctx, bson.M{"_id": objID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrder replaces the item summary and re-applies stock: every line of
// the previous version is reverted, then every line of the new version is
// applied, all inside one transaction. The previous version is read inside the
// transaction so the revert lines always match the committed document, also
// when the driver retries the callback after a write conflict.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var input models.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateCart(input.Items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	newLines, err := cartLines(input.Items)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	summary, subtotal := buildItemsSummary(input.Items)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = oc.DB.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		var original models.Order
		if err := oc.DB.Orders.FindOne(sc, bson.M{"_id": objID}).Decode(&original); err != nil {
			return err
		}
		previousLines, err := summaryLines(original.ItemsSummary)
		if err != nil {
			return err
		}

		status := input.Status
		if status == "" {
			status = original.Status
		}
		update := bson.M{"$set": bson.M{
			"subtotal":      subtotal,
			"tax":           input.Tax,
			"discount":      input.Discount,
			"total":         subtotal + input.Tax - input.Discount,
			"items_summary": summary,
			"status":        status,
			"notes":         input.Notes,
			"updated_at":    time.Now(),
		}}
		if _, err := oc.DB.Orders.UpdateOne(sc, bson.M{"_id": objID}, update); err != nil {
			return err
		}
		return oc.Stock.Swap(sc, previousLines, newLines)
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order", "details": err.Error()})
		return
	}

	var updated models.Order
	if err := oc.DB.Orders.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updated order", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (oc *OrderController) DeleteOrder(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = oc.DB.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		var order models.Order
		if err := oc.DB.Orders.FindOne(sc, bson.M{"_id": objID}).Decode(&order); err != nil {
			return err
		}
		lines, err := summaryLines(order.ItemsSummary)
		if err != nil {
			return err
		}
		if err := oc.Stock.Revert(sc, lines); err != nil {
			return err
		}
		_, err = oc.DB.Orders.DeleteOne(sc, bson.M{"_id": objID})
		return err
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
