package controllers

import (
	"testing"

	"backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestClampSaleReturnItemsCapsQuantity(t *testing.T) {
	productID := primitive.NewObjectID().Hex()
	sold := []models.OrderItem{
		{ProductID: productID, Title: "Monitor", Quantity: 2, UnitPrice: 150},
	}
	requested := []models.SaleReturnLineInput{
		{ID: productID, ReturnQuantity: 5},
	}

	items, total := clampSaleReturnItems(sold, nil, requested)

	if len(items) != 1 {
		t.Fatalf("expected 1 return line, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("expected quantity clamped to 2, got %d", items[0].Quantity)
	}
	if total != 300 {
		t.Errorf("expected total 300, got %v", total)
	}
}

func TestClampSaleReturnItemsUsesSnapshotPrice(t *testing.T) {
	productID := primitive.NewObjectID().Hex()
	sold := []models.OrderItem{
		{ProductID: productID, Title: "Desk", Quantity: 3, UnitPrice: 80},
	}
	requested := []models.SaleReturnLineInput{
		{ID: productID, ReturnQuantity: 1},
	}

	items, total := clampSaleReturnItems(sold, nil, requested)

	if items[0].Price != 80 {
		t.Errorf("expected snapshot price 80, got %v", items[0].Price)
	}
	if total != 80 {
		t.Errorf("expected total 80, got %v", total)
	}
}

func TestClampSaleReturnItemsDropsUnknownAndNonPositive(t *testing.T) {
	productID := primitive.NewObjectID().Hex()
	sold := []models.OrderItem{
		{ProductID: productID, Title: "Chair", Quantity: 4, UnitPrice: 25},
	}
	requested := []models.SaleReturnLineInput{
		{ID: primitive.NewObjectID().Hex(), ReturnQuantity: 2},
		{ID: productID, ReturnQuantity: 0},
		{ID: productID, ReturnQuantity: -3},
	}

	items, total := clampSaleReturnItems(sold, nil, requested)

	if len(items) != 0 {
		t.Errorf("expected no return lines, got %d", len(items))
	}
	if total != 0 {
		t.Errorf("expected zero total, got %v", total)
	}
}

func TestClampSaleReturnItemsAccountsForPriorReturns(t *testing.T) {
	productID := primitive.NewObjectID().Hex()
	sold := []models.OrderItem{
		{ProductID: productID, Title: "Kettle", Quantity: 5, UnitPrice: 40},
	}
	requested := []models.SaleReturnLineInput{
		{ID: productID, ReturnQuantity: 4},
	}

	// 3 of the 5 already went back in an earlier return.
	items, total := clampSaleReturnItems(sold, map[string]int{productID: 3}, requested)

	if len(items) != 1 {
		t.Fatalf("expected 1 return line, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("expected quantity clamped to remaining 2, got %d", items[0].Quantity)
	}
	if total != 80 {
		t.Errorf("expected total 80, got %v", total)
	}
}

func TestClampSaleReturnItemsDropsFullyReturnedLines(t *testing.T) {
	productID := primitive.NewObjectID().Hex()
	sold := []models.OrderItem{
		{ProductID: productID, Title: "Toaster", Quantity: 2, UnitPrice: 35},
	}
	requested := []models.SaleReturnLineInput{
		{ID: productID, ReturnQuantity: 1},
	}

	items, total := clampSaleReturnItems(sold, map[string]int{productID: 2}, requested)

	if len(items) != 0 {
		t.Errorf("expected no return lines once everything sold was returned, got %d", len(items))
	}
	if total != 0 {
		t.Errorf("expected zero total, got %v", total)
	}
}

func TestReturnedQuantitiesSumsAcrossReturns(t *testing.T) {
	first := primitive.NewObjectID().Hex()
	second := primitive.NewObjectID().Hex()
	prior := []models.SaleReturn{
		{Items: []models.SaleReturnItem{
			{ProductID: first, Quantity: 2},
			{ProductID: second, Quantity: 1},
		}},
		{Items: []models.SaleReturnItem{
			{ProductID: first, Quantity: 1},
		}},
	}

	qty := returnedQuantities(prior)

	if qty[first] != 3 {
		t.Errorf("expected 3 returned for first product, got %d", qty[first])
	}
	if qty[second] != 1 {
		t.Errorf("expected 1 returned for second product, got %d", qty[second])
	}
}

func TestClampPurchaseReturnItemsHonorsDiscount(t *testing.T) {
	productID := primitive.NewObjectID().Hex()
	purchased := []models.PurchaseItem{
		{ProductID: productID, Title: "Flour 25kg", Quantity: 10, UnitPrice: 30, Discount: 20},
	}
	requested := []models.PurchaseReturnLineInput{
		{ProductID: productID, ReturnQuantity: 10},
	}

	items, total := clampPurchaseReturnItems(purchased, requested)

	if len(items) != 1 {
		t.Fatalf("expected 1 return line, got %d", len(items))
	}
	// 10*30 - 20 line discount
	if total != 280 {
		t.Errorf("expected total 280, got %v", total)
	}
}

func TestClampPurchaseReturnItemsCapsQuantity(t *testing.T) {
	productID := primitive.NewObjectID().Hex()
	purchased := []models.PurchaseItem{
		{ProductID: productID, Title: "Sugar", Quantity: 6, UnitPrice: 12},
	}
	requested := []models.PurchaseReturnLineInput{
		{ProductID: productID, ReturnQuantity: 9},
	}

	items, _ := clampPurchaseReturnItems(purchased, requested)

	if items[0].Quantity != 6 {
		t.Errorf("expected quantity clamped to 6, got %d", items[0].Quantity)
	}
}

func TestRemainingPurchaseItems(t *testing.T) {
	first := primitive.NewObjectID().Hex()
	second := primitive.NewObjectID().Hex()
	purchased := []models.PurchaseItem{
		{ProductID: first, Title: "Rice", Quantity: 10, UnitPrice: 5},
		{ProductID: second, Title: "Oil", Quantity: 4, UnitPrice: 9},
	}
	returned := []models.PurchaseReturnItem{
		{ProductID: first, Quantity: 4},
		{ProductID: second, Quantity: 4},
	}

	remaining := remainingPurchaseItems(purchased, returned)

	if len(remaining) != 1 {
		t.Fatalf("expected 1 remaining line, got %d", len(remaining))
	}
	if remaining[0].ProductID != first {
		t.Errorf("expected remaining line for first product")
	}
	if remaining[0].Quantity != 6 {
		t.Errorf("expected remaining quantity 6, got %d", remaining[0].Quantity)
	}
}

func TestSaleReturnLinesConvertsIDs(t *testing.T) {
	id := primitive.NewObjectID()
	items := []models.SaleReturnItem{
		{ProductID: id.Hex(), Quantity: 2},
	}

	lines, err := saleReturnLines(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0].ProductID != id || lines[0].Quantity != 2 {
		t.Errorf("unexpected line %+v", lines[0])
	}
}
