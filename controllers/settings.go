package controllers

import (
	"context"
	"net/http"
	"time"

	"backend/config"
	"backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SettingsController struct {
	DB *config.Database
}

func NewSettingsController(db *config.Database) *SettingsController {
	return &SettingsController{DB: db}
}

// GetSettings returns the single settings document, 404 until it is first saved.
func (sc *SettingsController) GetSettings(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var settings models.Settings
	err := sc.DB.Settings.FindOne(ctx, bson.M{}).Decode(&settings)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Settings not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, settings)
}

// SaveSettings upserts the singleton document, replacing every field.
func (sc *SettingsController) SaveSettings(c *gin.Context) {
	var input models.SettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":               input.Title,
			"phone":               input.Phone,
			"email":               input.Email,
			"address":             input.Address,
			"city":                input.City,
			"state":               input.State,
			"country":             input.Country,
			"zip_code":            input.ZipCode,
			"footer_text":         input.FooterText,
			"currency":            input.Currency,
			"currency_symbol":     input.CurrencySymbol,
			"timezone":            input.Timezone,
			"date_format":         input.DateFormat,
			"logo":                input.Logo,
			"favicon":             input.Favicon,
			"tax_number":          input.TaxNumber,
			"registration_number": input.RegistrationNumber,
			"default_language":    input.DefaultLanguage,
			"updated_at":          now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}

	if _, err := sc.DB.Settings.UpdateOne(ctx, bson.M{}, update,
		options.Update().SetUpsert(true)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings", "details": err.Error()})
		return
	}

	var settings models.Settings
	if err := sc.DB.Settings.FindOne(ctx, bson.M{}).Decode(&settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch saved settings", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}
