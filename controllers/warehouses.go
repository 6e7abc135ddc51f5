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

type WarehouseController struct {
	DB *config.Database
}

func NewWarehouseController(db *config.Database) *WarehouseController {
	return &WarehouseController{DB: db}
}

func (wc *WarehouseController) CreateWarehouse(c *gin.Context) {
	var input models.WarehouseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	warehouse := models.Warehouse{
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

	if _, err := wc.DB.Warehouses.InsertOne(ctx, warehouse); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create warehouse", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, warehouse)
}

func (wc *WarehouseController) GetAllWarehouses(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := wc.DB.Warehouses.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch warehouses", "details": err.Error()})
		return
	}

	warehouses := []models.Warehouse{}
	if err := cursor.All(ctx, &warehouses); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch warehouses", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, warehouses)
}

func (wc *WarehouseController) GetWarehouseByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var warehouse models.Warehouse
	err = wc.DB.Warehouses.FindOne(ctx, bson.M{"_id": objID}).Decode(&warehouse)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Warehouse not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch warehouse", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, warehouse)
}

func (wc *WarehouseController) UpdateWarehouse(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse ID"})
		return
	}

	var input models.WarehouseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := wc.DB.Warehouses.UpdateOne(ctx, bson.M{"_id": objID},
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update warehouse", "details": err.Error()})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Warehouse not found"})
		return
	}

	var warehouse models.Warehouse
	if err := wc.DB.Warehouses.FindOne(ctx, bson.M{"_id": objID}).Decode(&warehouse); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updated warehouse", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, warehouse)
}

func (wc *WarehouseController) DeleteWarehouse(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := wc.DB.Warehouses.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete warehouse", "details": err.Error()})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Warehouse not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
