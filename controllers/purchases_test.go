package controllers

import (
	"testing"

	"backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestComputePurchaseTotal(t *testing.T) {
	items := []models.PurchaseItem{
		{ProductID: primitive.NewObjectID().Hex(), Quantity: 10, UnitPrice: 20, Discount: 15},
		{ProductID: primitive.NewObjectID().Hex(), Quantity: 5, UnitPrice: 8},
	}

	// base = (10*20 - 15) + (5*8) = 225, tax 10% = 22.5, shipping 30
	got := computePurchaseTotal(items, 10, 30)
	want := 225 + 22.5 + 30.0
	if got != want {
		t.Errorf("expected total %v, got %v", want, got)
	}
}

func TestComputePurchaseTotalNoTaxNoShipping(t *testing.T) {
	items := []models.PurchaseItem{
		{ProductID: primitive.NewObjectID().Hex(), Quantity: 3, UnitPrice: 7},
	}
	if got := computePurchaseTotal(items, 0, 0); got != 21 {
		t.Errorf("expected total 21, got %v", got)
	}
}

func TestValidatePurchaseItems(t *testing.T) {
	valid := primitive.NewObjectID().Hex()

	if err := validatePurchaseItems(nil); err == nil {
		t.Error("expected error for empty item list")
	}
	if err := validatePurchaseItems([]models.PurchaseItem{
		{ProductID: "bad", Quantity: 1, UnitPrice: 1},
	}); err == nil {
		t.Error("expected error for invalid product id")
	}
	if err := validatePurchaseItems([]models.PurchaseItem{
		{ProductID: valid, Quantity: 0, UnitPrice: 1},
	}); err == nil {
		t.Error("expected error for zero quantity")
	}
	if err := validatePurchaseItems([]models.PurchaseItem{
		{ProductID: valid, Quantity: 1, UnitPrice: -1},
	}); err == nil {
		t.Error("expected error for negative unit price")
	}
	if err := validatePurchaseItems([]models.PurchaseItem{
		{ProductID: valid, Quantity: 1, UnitPrice: 1, Discount: -5},
	}); err == nil {
		t.Error("expected error for negative discount")
	}
	if err := validatePurchaseItems([]models.PurchaseItem{
		{ProductID: valid, Quantity: 2, UnitPrice: 9.5},
	}); err != nil {
		t.Errorf("unexpected error for valid items: %v", err)
	}
}

func TestValidPurchaseStatus(t *testing.T) {
	for _, status := range []string{
		models.PurchaseStatusPending,
		models.PurchaseStatusOrdered,
		models.PurchaseStatusReceived,
		models.PurchaseStatusReturned,
		models.PurchaseStatusCancelled,
	} {
		if !validPurchaseStatus(status) {
			t.Errorf("expected %q to be valid", status)
		}
	}
	if validPurchaseStatus("received") {
		t.Error("lowercase status should be rejected")
	}
	if validPurchaseStatus("SHIPPED") {
		t.Error("unknown status should be rejected")
	}
}
