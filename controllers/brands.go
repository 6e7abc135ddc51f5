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

type BrandController struct {
	DB *config.Database
}

func NewBrandController(db *config.Database) *BrandController {
	return &BrandController{DB: db}
}

func (bc *BrandController) CreateBrand(c *gin.Context) {
	var input models.BrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	brand := models.Brand{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := bc.DB.Brands.InsertOne(ctx, brand); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Brand with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create brand", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, brand)
}

func (bc *BrandController) GetAllBrands(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := bc.DB.Brands.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brands", "details": err.Error()})
		return
	}

	brands := []models.Brand{}
	if err := cursor.All(ctx, &brands); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brands", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, brands)
}

func (bc *BrandController) UpdateBrand(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brand ID"})
		return
	}

	var input models.BrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := bc.DB.Brands.UpdateOne(ctx, bson.M{"_id": objID},
		bson.M{"$set": bson.M{"name": input.Name, "updated_at": time.Now()}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Brand with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update brand", "details": err.Error()})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}

	var brand models.Brand
	if err := bc.DB.Brands.FindOne(ctx, bson.M{"_id": objID}).Decode(&brand); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updated brand", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, brand)
}

func (bc *BrandController) DeleteBrand(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brand ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := bc.DB.Brands.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete brand", "details": err.Error()})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
