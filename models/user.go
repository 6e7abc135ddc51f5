package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	Staff     *StaffProfile      `bson:"staff,omitempty" json:"staff,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// StaffProfile is embedded in User for STAFF accounts created via registration.
type StaffProfile struct {
	Department  string `bson:"department" json:"department"`
	Designation string `bson:"designation" json:"designation"`
	Phone       string `bson:"phone,omitempty" json:"phone,omitempty"`
	Address     string `bson:"address,omitempty" json:"address,omitempty"`
}

// Staff is the HR-side record. It owns a User account; deleting the Staff
// also deletes the User, never the other way around.
type Staff struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Department  string             `bson:"department" json:"department"`
	Designation string             `bson:"designation" json:"designation"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

type RegisterInput struct {
	Name      string        `json:"name" binding:"required"`
	Email     string        `json:"email" binding:"required,email"`
	Password  string        `json:"password" binding:"required,min=6"`
	Role      string        `json:"role"`
	StaffData *StaffProfile `json:"staffData"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type StaffInput struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password"`
	Department  string `json:"department" binding:"required"`
	Designation string `json:"designation" binding:"required"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

type ProfileInput struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
