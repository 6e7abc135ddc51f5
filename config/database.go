package config

import (
	"context"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Database bundles the client and one collection per entity. It is built once
// in main and handed to the controllers; nothing in the codebase reaches for a
// package-level connection.
type Database struct {
	Client *mongo.Client

	Products        *mongo.Collection
	Orders          *mongo.Collection
	Purchases       *mongo.Collection
	PurchaseReturns *mongo.Collection
	SaleReturns     *mongo.Collection
	Customers       *mongo.Collection
	Suppliers       *mongo.Collection
	Warehouses      *mongo.Collection
	Staff           *mongo.Collection
	Users           *mongo.Collection
	Brands          *mongo.Collection
	Categories      *mongo.Collection
	Expenses        *mongo.Collection
	Settings        *mongo.Collection
	Sessions        *mongo.Collection
}

func Connect(ctx context.Context, uri, name string) (*Database, error) {
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	if name == "" {
		name = os.Getenv("MONGO_DB")
	}
	if name == "" {
		name = "posadmin"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(name)
	log.Printf("Connected to MongoDB, database %q", name)

	return &Database{
		Client:          client,
		Products:        db.Collection("products"),
		Orders:          db.Collection("orders"),
		Purchases:       db.Collection("purchases"),
		PurchaseReturns: db.Collection("purchasereturns"),
		SaleReturns:     db.Collection("salereturns"),
		Customers:       db.Collection("customers"),
		Suppliers:       db.Collection("suppliers"),
		Warehouses:      db.Collection("warehouses"),
		Staff:           db.Collection("staff"),
		Users:           db.Collection("users"),
		Brands:          db.Collection("brands"),
		Categories:      db.Collection("categories"),
		Expenses:        db.Collection("expenses"),
		Settings:        db.Collection("settings"),
		Sessions:        db.Collection("sessions"),
	}, nil
}

// EnsureIndexes creates the unique indexes the handlers rely on for their
// duplicate-key responses.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	for _, ix := range []struct {
		coll *mongo.Collection
		key  string
	}{
		{d.Users, "email"},
		{d.Orders, "invoice_no"},
		{d.Purchases, "invoice_no"},
		{d.Brands, "name"},
		{d.Categories, "name"},
	} {
		_, err := ix.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: ix.key, Value: 1}},
			Options: unique,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// WithTransaction runs fn inside a multi-document transaction. Every
// multi-step stock mutation goes through here so revert+apply pairs and
// return+status updates commit or abort as a unit.
func (d *Database) WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := d.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
