package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the persisted account record. Password holds the bcrypt hash and is
// never serialized to JSON.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Avatar   string             `bson:"avatar" json:"avatar"`
	Date     time.Time          `bson:"date" json:"date"`
}
