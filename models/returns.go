package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SaleReturnItem struct {
	ProductID string  `bson:"id" json:"id"`
	Title     string  `bson:"title" json:"title"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
	Total     float64 `bson:"total" json:"total"`
}

type SaleReturn struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Date         time.Time          `bson:"date" json:"date"`
	OrderID      string             `bson:"order_id" json:"orderId"`
	InvoiceNo    string             `bson:"invoice_no" json:"invoiceNo"`
	CustomerName string             `bson:"customer_name" json:"customerName"`
	TotalAmount  float64            `bson:"total_amount" json:"totalAmount"`
	Note         string             `bson:"note,omitempty" json:"note,omitempty"`
	Items        []SaleReturnItem   `bson:"items" json:"items"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}

type SaleReturnLineInput struct {
	ID             string `json:"id" binding:"required"`
	ReturnQuantity int    `json:"returnQuantity"`
}

type SaleReturnInput struct {
	OrderID string                `json:"orderId" binding:"required"`
	Date    string                `json:"date"`
	Note    string                `json:"note"`
	Items   []SaleReturnLineInput `json:"items" binding:"required"`
}

type PurchaseReturnItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Title     string  `bson:"title" json:"title"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unit_price" json:"unitPrice"`
	Discount  float64 `bson:"discount" json:"discount"`
	Total     float64 `bson:"total" json:"total"`
}

type PurchaseReturn struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Date        time.Time            `bson:"date" json:"date"`
	PurchaseID  string               `bson:"purchase_id" json:"purchaseId"`
	InvoiceNo   string               `bson:"invoice_no" json:"invoiceNo"`
	Supplier    string               `bson:"supplier" json:"supplier"`
	Warehouse   string               `bson:"warehouse" json:"warehouse"`
	TotalAmount float64              `bson:"total_amount" json:"totalAmount"`
	Note        string               `bson:"note,omitempty" json:"note,omitempty"`
	Items       []PurchaseReturnItem `bson:"items" json:"items"`
	CreatedAt   time.Time            `bson:"created_at" json:"createdAt"`
}

type PurchaseReturnLineInput struct {
	ProductID      string `json:"productId" binding:"required"`
	ReturnQuantity int    `json:"returnQuantity"`
}

type PurchaseReturnInput struct {
	PurchaseID string                    `json:"purchaseId" binding:"required"`
	Date       string                    `json:"date"`
	Note       string                    `json:"note"`
	Items      []PurchaseReturnLineInput `json:"items" binding:"required"`
}
