package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PurchaseStatusPending   = "PENDING"
	PurchaseStatusOrdered   = "ORDERED"
	PurchaseStatusReceived  = "RECEIVED"
	PurchaseStatusReturned  = "RETURNED"
	PurchaseStatusCancelled = "CANCELLED"
)

type PurchaseItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Title     string  `bson:"title" json:"title"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unit_price" json:"unitPrice"`
	Discount  float64 `bson:"discount" json:"discount"`
}

// Purchase's Received flag tracks whether the goods are currently counted in
// stock. It survives the status moving on to RETURNED, which Status alone
// cannot tell apart from a purchase that was never received.
type Purchase struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	InvoiceNo   string             `bson:"invoice_no" json:"invoiceNo"`
	Date        time.Time          `bson:"date" json:"date"`
	Supplier    string             `bson:"supplier" json:"supplier"`
	Warehouse   string             `bson:"warehouse" json:"warehouse"`
	Status      string             `bson:"status" json:"status"`
	Received    bool               `bson:"received" json:"received"`
	TotalAmount float64            `bson:"total_amount" json:"totalAmount"`
	Tax         float64            `bson:"tax" json:"tax"`
	Shipping    float64            `bson:"shipping" json:"shipping"`
	Note        string             `bson:"note,omitempty" json:"note,omitempty"`
	Items       []PurchaseItem     `bson:"items" json:"items"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

type PurchaseInput struct {
	InvoiceNo string         `json:"invoiceNo"`
	Date      string         `json:"date"`
	Supplier  string         `json:"supplier" binding:"required"`
	Warehouse string         `json:"warehouse" binding:"required"`
	Status    string         `json:"status"`
	Tax       float64        `json:"tax"`
	Shipping  float64        `json:"shipping"`
	Note      string         `json:"note"`
	Items     []PurchaseItem `json:"items" binding:"required"`
}
