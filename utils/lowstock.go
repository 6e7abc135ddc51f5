package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"backend/config"
	"backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultLowStockThreshold = 5

// CheckLowStock runs daily from the scheduler. It logs every product at or
// below the threshold and mails the digest to the business email from
// settings when SMTP is configured.
func CheckLowStock(db *config.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	threshold := defaultLowStockThreshold
	if v, err := strconv.Atoi(os.Getenv("LOW_STOCK_THRESHOLD")); err == nil && v >= 0 {
		threshold = v
	}

	cursor, err := db.Products.Find(ctx,
		bson.M{"stock": bson.M{"$lte": threshold}},
		options.Find().SetSort(bson.D{{Key: "stock", Value: 1}}),
	)
	if err != nil {
		log.Printf("Low-stock check failed: %v", err)
		return
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		log.Printf("Low-stock check failed: %v", err)
		return
	}
	if len(products) == 0 {
		log.Println("Low-stock check: all products above threshold")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d product(s) at or below stock threshold %d:\n\n", len(products), threshold)
	for _, p := range products {
		fmt.Fprintf(&b, "  %-40s stock %d\n", p.Title, p.Stock)
		log.Printf("Low stock: %q has %d left", p.Title, p.Stock)
	}

	var settings models.Settings
	err = db.Settings.FindOne(ctx, bson.M{}).Decode(&settings)
	if err != nil || settings.Email == "" {
		if err != nil && err != mongo.ErrNoDocuments {
			log.Printf("Low-stock digest: could not load settings: %v", err)
		}
		return
	}

	subject := fmt.Sprintf("Low stock digest for %s", settings.Title)
	if err := SendEmail(settings.Email, subject, b.String()); err != nil {
		if errors.Is(err, ErrMailNotConfigured) {
			return
		}
		log.Printf("Low-stock digest: sending email failed: %v", err)
		return
	}
	log.Printf("Low-stock digest sent to %s", settings.Email)
}
