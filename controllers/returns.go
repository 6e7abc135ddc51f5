package controllers

import (
	"context"
	"errors"
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

type ReturnController struct {
	DB    *config.Database
	Stock *stock.Adjuster
}

func NewReturnController(db *config.Database) *ReturnController {
	return &ReturnController{
		DB:    db,
		Stock: stock.NewAdjuster(&stock.MongoStore{Products: db.Products}),
	}
}

// errNothingToReturn is returned from inside a return transaction when the
// clamp leaves no lines, so the handler can answer 400 instead of 500.
var errNothingToReturn = errors.New("nothing to return")

// clampSaleReturnItems builds the return lines from the order snapshot. A
// requested quantity is capped at the quantity originally sold minus what
// earlier returns already took back, lines the order never contained are
// dropped, and the snapshot's unit price is authoritative. Sale returns never
// honor a discount.
func clampSaleReturnItems(sold []models.OrderItem, alreadyReturned map[string]int, requested []models.SaleReturnLineInput) ([]models.SaleReturnItem, float64) {
	byProduct := make(map[string]models.OrderItem, len(sold))
	for _, item := range sold {
		byProduct[item.ProductID] = item
	}

	items := make([]models.SaleReturnItem, 0, len(requested))
	var total float64
	for _, req := range requested {
		if req.ReturnQuantity <= 0 {
			continue
		}
		original, ok := byProduct[req.ID]
		if !ok {
			continue
		}
		available := original.Quantity - alreadyReturned[req.ID]
		if available <= 0 {
			continue
		}
		qty := req.ReturnQuantity
		if qty > available {
			qty = available
		}
		lineTotal := float64(qty) * original.UnitPrice
		items = append(items, models.SaleReturnItem{
			ProductID: original.ProductID,
			Title:     original.Title,
			Quantity:  qty,
			Price:     original.UnitPrice,
			Total:     lineTotal,
		})
		total += lineTotal
	}
	return items, total
}

// clampPurchaseReturnItems mirrors the sale-return clamp against a purchase's
// item list. Unlike sale returns, the line discount is subtracted from the
// return total.
func clampPurchaseReturnItems(purchased []models.PurchaseItem, requested []models.PurchaseReturnLineInput) ([]models.PurchaseReturnItem, float64) {
	byProduct := make(map[string]models.PurchaseItem, len(purchased))
	for _, item := range purchased {
		byProduct[item.ProductID] = item
	}

	items := make([]models.PurchaseReturnItem, 0, len(requested))
	var total float64
	for _, req := range requested {
		if req.ReturnQuantity <= 0 {
			continue
		}
		original, ok := byProduct[req.ProductID]
		if !ok {
			continue
		}
		qty := req.ReturnQuantity
		if qty > original.Quantity {
			qty = original.Quantity
		}
		lineTotal := float64(qty)*original.UnitPrice - original.Discount
		items = append(items, models.PurchaseReturnItem{
			ProductID: original.ProductID,
			Title:     original.Title,
			Quantity:  qty,
			UnitPrice: original.UnitPrice,
			Discount:  original.Discount,
			Total:     lineTotal,
		})
		total += lineTotal
	}
	return items, total
}

// returnedQuantities sums the quantities taken back by earlier returns,
// keyed by product.
func returnedQuantities(returns []models.SaleReturn) map[string]int {
	qty := make(map[string]int)
	for _, r := range returns {
		for _, item := range r.Items {
			qty[item.ProductID] += item.Quantity
		}
	}
	return qty
}

// remainingPurchaseItems reduces a purchase's item list by the returned
// quantities, dropping lines that were fully returned.
func remainingPurchaseItems(purchased []models.PurchaseItem, returned []models.PurchaseReturnItem) []models.PurchaseItem {
	returnedQty := make(map[string]int, len(returned))
	for _, item := range returned {
		returnedQty[item.ProductID] += item.Quantity
	}

	remaining := make([]models.PurchaseItem, 0, len(purchased))
	for _, item := range purchased {
		item.Quantity -= returnedQty[item.ProductID]
		if item.Quantity > 0 {
			remaining = append(remaining, item)
		}
	}
	return remaining
}

func saleReturnLines(items []models.SaleReturnItem) ([]stock.Line, error) {
	lines := make([]stock.Line, 0, len(items))
	for _, item := range items {
		id, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, stock.Line{ProductID: id, Quantity: item.Quantity})
	}
	return lines, nil
}

func purchaseReturnLines(items []models.PurchaseReturnItem) ([]stock.Line, error) {
	lines := make([]stock.Line, 0, len(items))
	for _, item := range items {
		id, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, stock.Line{ProductID: id, Quantity: item.Quantity})
	}
	return lines, nil
}

// CreateSaleReturn records a partial reversal of an order: the return
// document, the order's "returned" status and the stock increments commit
// together.
func (rc *ReturnController) CreateSaleReturn(c *gin.Context) {
	var input models.SaleReturnInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID, err := primitive.ObjectIDFromHex(input.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}
	date, err := utils.ParseDate(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Order and prior returns are read inside the transaction: the clamp runs
	// against what is still returnable at commit time, not a stale snapshot.
	var saleReturn models.SaleReturn
	err = rc.DB.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		var order models.Order
		if err := rc.DB.Orders.FindOne(sc, bson.M{"_id": orderID}).Decode(&order); err != nil {
			return err
		}

		cursor, err := rc.DB.SaleReturns.Find(sc, bson.M{"order_id": order.ID.Hex()})
		if err != nil {
			return err
		}
		var prior []models.SaleReturn
		if err := cursor.All(sc, &prior); err != nil {
			return err
		}

		items, total := clampSaleReturnItems(order.ItemsSummary, returnedQuantities(prior), input.Items)
		if len(items) == 0 {
			return errNothingToReturn
		}
		lines, err := saleReturnLines(items)
		if err != nil {
			return err
		}

		saleReturn = models.SaleReturn{
			ID:           primitive.NewObjectID(),
			Date:         date,
			OrderID:      order.ID.Hex(),
			InvoiceNo:    order.InvoiceNo,
			CustomerName: order.CustomerName,
			TotalAmount:  total,
			Note:         input.Note,
			Items:        items,
			CreatedAt:    time.Now(),
		}

		if _, err := rc.DB.SaleReturns.InsertOne(sc, saleReturn); err != nil {
			return err
		}
		_, err = rc.DB.Orders.UpdateOne(sc, bson.M{"_id": orderID},
			bson.M{"$set": bson.M{"status": models.OrderStatusReturned, "updated_at": time.Now()}})
		if err != nil {
			return err
		}
		return rc.Stock.Revert(sc, lines)
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if errors.Is(err, errNothingToReturn) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Return must contain at least one returnable item from the order"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale return", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, saleReturn)
}

func (rc *ReturnController) GetAllSaleReturns(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := rc.DB.SaleReturns.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sale returns", "details": err.Error()})
		return
	}

	returns := []models.SaleReturn{}
	if err := cursor.All(ctx, &returns); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sale returns", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, returns)
}

// CreatePurchaseReturn records a reversal against a purchase, marks the
// purchase RETURNED with the returned quantities subtracted from its item
// list, and, when the goods had been received into stock, removes them again.
func (rc *ReturnController) CreatePurchaseReturn(c *gin.Context) {
	var input models.PurchaseReturnInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchaseID, err := primitive.ObjectIDFromHex(input.PurchaseID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase ID"})
		return
	}
	date, err := utils.ParseDate(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// The purchase is read inside the transaction; its item list already
	// excludes earlier returns, so the clamp is against what is actually left.
	var purchaseReturn models.PurchaseReturn
	err = rc.DB.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		var purchase models.Purchase
		if err := rc.DB.Purchases.FindOne(sc, bson.M{"_id": purchaseID}).Decode(&purchase); err != nil {
			return err
		}

		items, total := clampPurchaseReturnItems(purchase.Items, input.Items)
		if len(items) == 0 {
			return errNothingToReturn
		}
		lines, err := purchaseReturnLines(items)
		if err != nil {
			return err
		}

		purchaseReturn = models.PurchaseReturn{
			ID:          primitive.NewObjectID(),
			Date:        date,
			PurchaseID:  purchase.ID.Hex(),
			InvoiceNo:   purchase.InvoiceNo,
			Supplier:    purchase.Supplier,
			Warehouse:   purchase.Warehouse,
			TotalAmount: total,
			Note:        input.Note,
			Items:       items,
			CreatedAt:   time.Now(),
		}

		if _, err := rc.DB.PurchaseReturns.InsertOne(sc, purchaseReturn); err != nil {
			return err
		}
		_, err = rc.DB.Purchases.UpdateOne(sc, bson.M{"_id": purchaseID},
			bson.M{"$set": bson.M{
				"status":     models.PurchaseStatusReturned,
				"items":      remainingPurchaseItems(purchase.Items, items),
				"updated_at": time.Now(),
			}})
		if err != nil {
			return err
		}
		// Received survives the RETURNED status, so goods that entered stock
		// leave it again even on a second return against the same purchase.
		if purchase.Received {
			return rc.Stock.Apply(sc, lines)
		}
		return nil
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
			return
		}
		if errors.Is(err, errNothingToReturn) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Return must contain at least one returnable item from the purchase"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create purchase return", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, purchaseReturn)
}

func (rc *ReturnController) GetAllPurchaseReturns(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := rc.DB.PurchaseReturns.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase returns", "details": err.Error()})
		return
	}

	returns := []models.PurchaseReturn{}
	if err := cursor.All(ctx, &returns); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase returns", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, returns)
}
