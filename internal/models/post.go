package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post carries a denormalized snapshot of the author's name and avatar taken
// at creation time; it is not backfilled when the author record changes.
type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User     primitive.ObjectID `bson:"user" json:"user"`
	Text     string             `bson:"text" json:"text"`
	Name     string             `bson:"name" json:"name"`
	Avatar   string             `bson:"avatar" json:"avatar"`
	Likes    []Like             `bson:"likes" json:"likes"`
	Comments []Comment          `bson:"comments" json:"comments"`
	Date     time.Time          `bson:"date" json:"date"`
}

// Like records a single user's like; a user may appear at most once in a
// post's likes list.
type Like struct {
	User primitive.ObjectID `bson:"user" json:"user"`
}

type Comment struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	User   primitive.ObjectID `bson:"user" json:"user"`
	Text   string             `bson:"text" json:"text"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar" json:"avatar"`
	Date   time.Time          `bson:"date" json:"date"`
}
