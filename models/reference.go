package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Customer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

type CustomerInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Supplier struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	City      string             `bson:"city,omitempty" json:"city,omitempty"`
	Country   string             `bson:"country,omitempty" json:"country,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

type SupplierInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type Warehouse struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	City      string             `bson:"city,omitempty" json:"city,omitempty"`
	Country   string             `bson:"country,omitempty" json:"country,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

type WarehouseInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type Brand struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

type BrandInput struct {
	Name string `json:"name" binding:"required"`
}

type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

type CategoryInput struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image"`
}

type Expense struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string             `bson:"title" json:"title"`
	Date      time.Time          `bson:"date" json:"date"`
	Category  string             `bson:"category" json:"category"`
	Amount    float64            `bson:"amount" json:"amount"`
	Reference string             `bson:"reference,omitempty" json:"reference,omitempty"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

type ExpenseInput struct {
	Title     string  `json:"title" binding:"required"`
	Date      string  `json:"date" binding:"required"`
	Category  string  `json:"category" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
	Reference string  `json:"reference"`
	Note      string  `json:"note"`
}

// Settings is a singleton document, written with an upsert.
type Settings struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title              string             `bson:"title" json:"title"`
	Phone              string             `bson:"phone" json:"phone"`
	Email              string             `bson:"email" json:"email"`
	Address            string             `bson:"address" json:"address"`
	City               string             `bson:"city,omitempty" json:"city,omitempty"`
	State              string             `bson:"state,omitempty" json:"state,omitempty"`
	Country            string             `bson:"country,omitempty" json:"country,omitempty"`
	ZipCode            string             `bson:"zip_code,omitempty" json:"zipCode,omitempty"`
	FooterText         string             `bson:"footer_text" json:"footerText"`
	Currency           string             `bson:"currency" json:"currency"`
	CurrencySymbol     string             `bson:"currency_symbol" json:"currencySymbol"`
	Timezone           string             `bson:"timezone" json:"timezone"`
	DateFormat         string             `bson:"date_format" json:"dateFormat"`
	Logo               string             `bson:"logo,omitempty" json:"logo,omitempty"`
	Favicon            string             `bson:"favicon,omitempty" json:"favicon,omitempty"`
	TaxNumber          string             `bson:"tax_number,omitempty" json:"taxNumber,omitempty"`
	RegistrationNumber string             `bson:"registration_number,omitempty" json:"registrationNumber,omitempty"`
	DefaultLanguage    string             `bson:"default_language" json:"defaultLanguage"`
	CreatedAt          time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updatedAt"`
}

type SettingsInput struct {
	Title              string `json:"title" binding:"required"`
	Phone              string `json:"phone" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Address            string `json:"address" binding:"required"`
	City               string `json:"city"`
	State              string `json:"state"`
	Country            string `json:"country"`
	ZipCode            string `json:"zipCode"`
	FooterText         string `json:"footerText" binding:"required"`
	Currency           string `json:"currency"`
	CurrencySymbol     string `json:"currencySymbol"`
	Timezone           string `json:"timezone"`
	DateFormat         string `json:"dateFormat"`
	Logo               string `json:"logo"`
	Favicon            string `json:"favicon"`
	TaxNumber          string `json:"taxNumber"`
	RegistrationNumber string `json:"registrationNumber"`
	DefaultLanguage    string `json:"defaultLanguage"`
}
