package controllers

import (
	"context"
	"net/http"
	"time"

	"backend/config"
	"backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SupplierController struct {
	DB *config.Database
}

func NewSupplierController(db *config.Database) *SupplierController {
	return &SupplierController{DB: db}
}

func (sc *SupplierController) CreateSupplier(c *gin.Context) {
	var input models.SupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	supplier := models.Supplier{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		City:      input.City,
		Country:   input.Country,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := sc.DB.Suppliers.InsertOne(ctx, supplier); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supplier", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (sc *SupplierController) GetAllSuppliers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := sc.DB.Suppliers.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suppliers", "details": err.Error()})
		return
	}

	suppliers := []models.Supplier{}
	if err := cursor.All(ctx, &suppliers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suppliers", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func (sc *SupplierController) GetSupplierByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var supplier models.Supplier
	err = sc.DB.Suppliers.FindOne(ctx, bson.M{"_id": objID}).Decode(&supplier)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch supplier", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (sc *SupplierController) UpdateSupplier(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID"})
		return
	}

	var input models.SupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := sc.DB.Suppliers.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$set": bson.M{
			"name":       input.Name,
			"email":      input.Email,
			"phone":      input.Phone,
			"address":    input.Address,
			"city":       input.City,
			"country":    input.Country,
			"updated_at": time.Now(),
		}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update supplier", "details": err.Error()})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}

	var supplier models.Supplier
	if err := sc.DB.Suppliers.FindOne(ctx, bson.M{"_id": objID}).Decode(&supplier); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updated supplier", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (sc *SupplierController) DeleteSupplier(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := sc.DB.Suppliers.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete supplier", "details": err.Error()})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
