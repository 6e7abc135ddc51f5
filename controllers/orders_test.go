package controllers

import (
	"testing"

	"backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildItemsSummaryRecomputesTotals(t *testing.T) {
	items := []models.CartItem{
		{ID: primitive.NewObjectID().Hex(), Title: "Keyboard", Quantity: 2, Price: 45.50, Category: "Peripherals"},
		{ID: primitive.NewObjectID().Hex(), Title: "Mouse", Quantity: 3, Price: 19.99},
	}

	summary, subtotal := buildItemsSummary(items)

	if len(summary) != 2 {
		t.Fatalf("expected 2 summary lines, got %d", len(summary))
	}
	if summary[0].TotalPrice != 91.0 {
		t.Errorf("expected first line total 91.0, got %v", summary[0].TotalPrice)
	}
	if summary[1].TotalPrice != 59.97 {
		t.Errorf("expected second line total 59.97, got %v", summary[1].TotalPrice)
	}
	want := 91.0 + 59.97
	if subtotal != want {
		t.Errorf("expected subtotal %v, got %v", want, subtotal)
	}
}

func TestBuildItemsSummaryDefaultsCategory(t *testing.T) {
	items := []models.CartItem{
		{ID: primitive.NewObjectID().Hex(), Title: "Cable", Quantity: 1, Price: 5},
	}

	summary, _ := buildItemsSummary(items)

	if summary[0].Category != "Uncategorized" {
		t.Errorf("expected default category, got %q", summary[0].Category)
	}
}

func TestValidateCartRejectsEmpty(t *testing.T) {
	if err := validateCart(nil); err == nil {
		t.Fatal("expected error for empty cart")
	}
}

func TestValidateCartRejectsBadLines(t *testing.T) {
	valid := primitive.NewObjectID().Hex()
	cases := []struct {
		name string
		item models.CartItem
	}{
		{"invalid id", models.CartItem{ID: "not-an-id", Title: "X", Quantity: 1, Price: 1}},
		{"zero quantity", models.CartItem{ID: valid, Title: "X", Quantity: 0, Price: 1}},
		{"negative quantity", models.CartItem{ID: valid, Title: "X", Quantity: -2, Price: 1}},
		{"negative price", models.CartItem{ID: valid, Title: "X", Quantity: 1, Price: -1}},
	}

	for _, tc := range cases {
		if err := validateCart([]models.CartItem{tc.item}); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestCartLinesConvertsIDs(t *testing.T) {
	id := primitive.NewObjectID()
	items := []models.CartItem{
		{ID: id.Hex(), Title: "Lamp", Quantity: 4, Price: 12},
	}

	lines, err := cartLines(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].ProductID != id {
		t.Errorf("expected product id %s, got %s", id.Hex(), lines[0].ProductID.Hex())
	}
	if lines[0].Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", lines[0].Quantity)
	}
}

func TestSummaryLinesRejectsCorruptID(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: "garbage", Title: "Lamp", Quantity: 1},
	}
	if _, err := summaryLines(items); err == nil {
		t.Fatal("expected error for corrupt stored id")
	}
}
