package controllers

import (
	"context"
	"net/http"
	"time"

	"backend/config"
	"backend/models"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StaffController struct {
	DB *config.Database
}

func NewStaffController(db *config.Database) *StaffController {
	return &StaffController{DB: db}
}

// CreateStaff creates the User account first, then the Staff record that owns
// it, in a single transaction so a failure leaves neither behind.
func (sc *StaffController) CreateStaff(c *gin.Context) {
	var input models.StaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create staff", "details": err.Error()})
		return
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  hashed,
		Role:      models.RoleStaff,
		CreatedAt: now,
		UpdatedAt: now,
	}
	staff := models.Staff{
		ID:          primitive.NewObjectID(),
		UserID:      user.ID,
		Name:        input.Name,
		Email:       input.Email,
		Department:  input.Department,
		Designation: input.Designation,
		Phone:       input.Phone,
		Address:     input.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = sc.DB.WithTransaction(ctx, func(tc mongo.SessionContext) error {
		if _, err := sc.DB.Users.InsertOne(tc, user); err != nil {
			return err
		}
		_, err := sc.DB.Staff.InsertOne(tc, staff)
		return err
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists with this email"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create staff", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, staff)
}

func (sc *StaffController) GetAllStaff(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := sc.DB.Staff.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch staff", "details": err.Error()})
		return
	}

	staff := []models.Staff{}
	if err := cursor.All(ctx, &staff); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch staff", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (sc *StaffController) GetStaffByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var staff models.Staff
	err = sc.DB.Staff.FindOne(ctx, bson.M{"_id": objID}).Decode(&staff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Staff not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch staff", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (sc *StaffController) UpdateStaff(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID"})
		return
	}

	var input models.StaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var staff models.Staff
	err = sc.DB.Staff.FindOne(ctx, bson.M{"_id": objID}).Decode(&staff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Staff not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch staff", "details": err.Error()})
		}
		return
	}

	userUpdate := bson.M{
		"name":       input.Name,
		"email":      input.Email,
		"updated_at": time.Now(),
	}
	if input.Password != "" {
		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update staff", "details": err.Error()})
			return
		}
		userUpdate["password"] = hashed
	}

	staffUpdate := bson.M{
		"name":        input.Name,
		"email":       input.Email,
		"department":  input.Department,
		"designation": input.Designation,
		"phone":       input.Phone,
		"address":     input.Address,
		"updated_at":  time.Now(),
	}

	err = sc.DB.WithTransaction(ctx, func(tc mongo.SessionContext) error {
		if _, err := sc.DB.Users.UpdateOne(tc, bson.M{"_id": staff.UserID}, bson.M{"$set": userUpdate}); err != nil {
			return err
		}
		_, err := sc.DB.Staff.UpdateOne(tc, bson.M{"_id": objID}, bson.M{"$set": staffUpdate})
		return err
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists with this email"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update staff", "details": err.Error()})
		return
	}

	var updated models.Staff
	if err := sc.DB.Staff.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updated staff", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteStaff removes the Staff record and its User account. Deleting a user
// directly never cascades the other way.
func (sc *StaffController) DeleteStaff(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var staff models.Staff
	err = sc.DB.Staff.FindOne(ctx, bson.M{"_id": objID}).Decode(&staff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Staff not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch staff", "details": err.Error()})
		}
		return
	}

	err = sc.DB.WithTransaction(ctx, func(tc mongo.SessionContext) error {
		if _, err := sc.DB.Users.DeleteOne(tc, bson.M{"_id": staff.UserID}); err != nil {
			return err
		}
		_, err := sc.DB.Staff.DeleteOne(tc, bson.M{"_id": objID})
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete staff", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
