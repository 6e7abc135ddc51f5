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
)

type AuthController struct {
	DB *config.Database
}

func NewAuthController(db *config.Database) *AuthController {
	return &AuthController{DB: db}
}

func getClientIP(c *gin.Context) string {
	ip := c.Request.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = c.ClientIP()
	}
	return ip
}

func (ac *AuthController) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := ac.DB.Users.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := utils.VerifyPassword(user.Password, input.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	claim := utils.JWTClaim{
		ID:    user.ID.Hex(),
		Email: user.Email,
		Role:  user.Role,
	}
	if user.Role == models.RoleStaff {
		var staff models.Staff
		if err := ac.DB.Staff.FindOne(ctx, bson.M{"user_id": user.ID}).Decode(&staff); err == nil {
			claim.StaffID = staff.ID.Hex()
			claim.Department = staff.Department
			claim.Designation = staff.Designation
		} else if user.Staff != nil {
			claim.Department = user.Staff.Department
			claim.Designation = user.Staff.Designation
		}
	}

	token, err := utils.GenerateToken(claim)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while generating token"})
		return
	}

	session := models.Session{
		UserID:    user.ID,
		Role:      user.Role,
		IP:        getClientIP(c),
		Device:    c.Request.UserAgent(),
		Timestamp: time.Now(),
	}
	if _, err := ac.DB.Sessions.InsertOne(ctx, session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording session"})
		return
	}

	c.SetCookie("token", token, 3600*24, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"id":    user.ID.Hex(),
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

func (ac *AuthController) Register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Role == "" {
		input.Role = models.RoleStaff
	}
	if input.Role != models.RoleAdmin && input.Role != models.RoleStaff {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := ac.DB.Users.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user", "details": err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists with this email"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user", "details": err.Error()})
		return
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  hashed,
		Role:      input.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Role == models.RoleStaff && input.StaffData != nil {
		user.Staff = input.StaffData
	}

	if _, err := ac.DB.Users.InsertOne(ctx, user); err != nil {
		// The unique index is the backstop for concurrent registrations.
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists with this email"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	email := c.GetString("email")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := ac.DB.Users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ac *AuthController) UpdateProfile(c *gin.Context) {
	email := c.GetString("email")

	var input models.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := ac.DB.Users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile", "details": err.Error()})
		}
		return
	}

	update := bson.M{
		"name":       input.Name,
		"email":      input.Email,
		"updated_at": time.Now(),
	}

	if input.NewPassword != "" {
		if err := utils.VerifyPassword(user.Password, input.CurrentPassword); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
			return
		}
		hashed, err := utils.HashPassword(input.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile", "details": err.Error()})
			return
		}
		update["password"] = hashed
	}

	if input.Email != user.Email {
		count, err := ac.DB.Users.CountDocuments(ctx, bson.M{"email": input.Email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile", "details": err.Error()})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
			return
		}
	}

	err = ac.DB.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := ac.DB.Users.UpdateOne(sc, bson.M{"_id": user.ID}, bson.M{"$set": update}); err != nil {
			return err
		}
		if user.Role == models.RoleStaff {
			_, err := ac.DB.Staff.UpdateOne(sc, bson.M{"user_id": user.ID},
				bson.M{"$set": bson.M{"name": input.Name, "email": input.Email, "updated_at": time.Now()}})
			return err
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
