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

type PurchaseController struct {
	DB    *config.Database
	Stock *stock.Adjuster
}

func NewPurchaseController(db *config.Database) *PurchaseController {
	return &PurchaseController{
		DB:    db,
		Stock: stock.NewAdjuster(&stock.MongoStore{Products: db.Products}),
	}
}

// computePurchaseTotal sums the lines (discount per line), then applies the
// percentage tax and flat shipping at the document level only.
func computePurchaseTotal(items []models.PurchaseItem, taxPercent, shipping float64) float64 {
	var base float64
	for _, item := range items {
		base += float64(item.Quantity)*item.UnitPrice - item.Discount
	}
	return base + base*taxPercent/100 + shipping
}

func validatePurchaseItems(items []models.PurchaseItem) error {
	if len(items) == 0 {
		return errors.New("purchase must contain at least one item")
	}
	for i, item := range items {
		if _, err := primitive.ObjectIDFromHex(item.ProductID); err != nil {
			return fmt.Errorf("item %d: invalid product id %q", i, item.ProductID)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d: quantity must be positive", i)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("item %d: unit price must not be negative", i)
		}
		if item.Discount < 0 {
			return fmt.Errorf("item %d: discount must not be negative", i)
		}
	}
	return nil
}

func purchaseLines(items []models.PurchaseItem) ([]stock.Line, error) {
	lines := make([]stock.Line, 0, len(items))
	for _, item := range items {
		id, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product id %q in purchase", item.ProductID)
		}
		lines = append(lines, stock.Line{ProductID: id, Quantity: item.Quantity})
	}
	return lines, nil
}

func validPurchaseStatus(status string) bool {
	switch status {
	case models.PurchaseStatusPending, models.PurchaseStatusOrdered,
		models.PurchaseStatusReceived, models.PurchaseStatusReturned,
		models.PurchaseStatusCancelled:
		return true
	}
	return false
}

func (pc *PurchaseController) CreatePurchase(c *gin.Context) {
	var input models.PurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validatePurchaseItems(input.Items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Status == "" {
		input.Status = models.PurchaseStatusPending
	}
	if !validPurchaseStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase status"})
		return
	}

	date, err := utils.ParseDate(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}
	lines, err := purchaseLines(input.Items)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	purchase := models.Purchase{
		ID:          primitive.NewObjectID(),
		InvoiceNo:   input.InvoiceNo,
		Date:        date,
		Supplier:    input.Supplier,
		Warehouse:   input.Warehouse,
		Status:      input.Status,
		Received:    input.Status == models.PurchaseStatusReceived,
		TotalAmount: computePurchaseTotal(input.Items, input.Tax, input.Shipping),
		Tax:         input.Tax,
		Shipping:    input.Shipping,
		Note:        input.Note,
		Items:       input.Items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if purchase.InvoiceNo == "" {
		purchase.InvoiceNo = utils.GenerateInvoiceNo("PUR")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = pc.DB.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := pc.DB.Purchases.InsertOne(sc, purchase); err != nil {
			return err
		}
		// Goods enter inventory the moment a purchase is RECEIVED.
		if purchase.Received {
			return pc.Stock.Revert(sc, lines)
		}
		return nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Purchase with this invoice number already exists"})
			return
		}
		if errors.Is(err, stock.ErrProductNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Purchase references an unknown product"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create purchase", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, purchase)
}

func (pc *PurchaseController) GetAllPurchases(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := pc.DB.Purchases.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases", "details": err.Error()})
		return
	}

	purchases := []models.Purchase{}
	if err := cursor.All(ctx, &purchases); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, purchases)
}

func (pc *PurchaseController) GetPurchaseByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var purchase models.Purchase
	err = pc.DB.Purchases.FindOne(ctx, bson.M{"_id": objID}).Decode(&purchase)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, purchase)
}

// UpdatePurchase recomputes the total and keeps stock consistent with the
// received state: a previously received purchase is backed out before the new
// version is applied. The original is read inside the transaction so the
// back-out lines always match the committed document, also across conflict
// retries.
func (pc *PurchaseController) UpdatePurchase(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase ID"})
		return
	}

	var input models.PurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validatePurchaseItems(input.Items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Status != "" && !validPurchaseStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase status"})
		return
	}
	date, err := utils.ParseDate(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}
	newLines, err := purchaseLines(input.Items)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = pc.DB.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		var original models.Purchase
		if err := pc.DB.Purchases.FindOne(sc, bson.M{"_id": objID}).Decode(&original); err != nil {
			return err
		}
		previousLines, err := purchaseLines(original.Items)
		if err != nil {
			return err
		}

		status := input.Status
		if status == "" {
			status = original.Status
		}
		received := status == models.PurchaseStatusReceived
		invoiceNo := input.InvoiceNo
		if invoiceNo == "" {
			invoiceNo = original.InvoiceNo
		}

		update := bson.M{"$set": bson.M{
			"invoice_no":   invoiceNo,
			"date":         date,
			"supplier":     input.Supplier,
			"warehouse":    input.Warehouse,
			"status":       status,
			"received":     received,
			"total_amount": computePurchaseTotal(input.Items, input.Tax, input.Shipping),
			"tax":          input.Tax,
			"shipping":     input.Shipping,
			"note":         input.Note,
			"items":        input.Items,
			"updated_at":   time.Now(),
		}}

		if original.Received {
			if err := pc.Stock.Apply(sc, previousLines); err != nil {
				return err
			}
		}
		if _, err := pc.DB.Purchases.UpdateOne(sc, bson.M{"_id": objID}, update); err != nil {
			return err
		}
		if received {
			return pc.Stock.Revert(sc, newLines)
		}
		return nil
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
			return
		}
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Purchase with this invoice number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update purchase", "details": err.Error()})
		return
	}

	var updated models.Purchase
	if err := pc.DB.Purchases.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updated purchase", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (pc *PurchaseController) DeletePurchase(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = pc.DB.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		var purchase models.Purchase
		if err := pc.DB.Purchases.FindOne(sc, bson.M{"_id": objID}).Decode(&purchase); err != nil {
			return err
		}
		lines, err := purchaseLines(purchase.Items)
		if err != nil {
			return err
		}
		if purchase.Received {
			if err := pc.Stock.Apply(sc, lines); err != nil {
				return err
			}
		}
		_, err = pc.DB.Purchases.DeleteOne(sc, bson.M{"_id": objID})
		return err
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete purchase", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
