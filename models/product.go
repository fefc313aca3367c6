package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Rating    float64            `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user" json:"userId"`
	Name         string             `bson:"name" json:"name"`
	Image        string             `bson:"image" json:"image"`
	Brand        string             `bson:"brand" json:"brand"`
	Category     string             `bson:"category" json:"category"`
	Description  string             `bson:"description" json:"description"`
	Rating       float64            `bson:"rating" json:"rating"`
	NumReviews   int                `bson:"numReviews" json:"numReviews"`
	Price        float64            `bson:"price" json:"price"`
	CountInStock int                `bson:"countInStock" json:"countInStock"`
	Reviews      []Review           `bson:"reviews" json:"reviews"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AddReview appends a review and recomputes the aggregate rating.
func (p *Product) AddReview(r Review, now time.Time) {
	p.Reviews = append(p.Reviews, r)
	p.NumReviews = len(p.Reviews)

	var sum float64
	for _, rev := range p.Reviews {
		sum += rev.Rating
	}
	p.Rating = sum / float64(len(p.Reviews))
	p.UpdatedAt = now
}

// Reviewed reports whether the given user already left a review.
func (p *Product) Reviewed(userID primitive.ObjectID) bool {
	for _, rev := range p.Reviews {
		if rev.UserID == userID {
			return true
		}
	}
	return false
}
