package bid

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BidRequest struct {
	JobId    string    `json:"jobId" validate:"required"`
	Email    string    `json:"email" validate:"required,email"`
	Price    float64   `json:"price" validate:"gte=0"`
	Comment  string    `json:"comment"`
	Deadline time.Time `json:"deadline" validate:"required"`
}

type Bid struct {
	Id       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	JobId    string             `json:"jobId" bson:"jobId"`
	Email    string             `json:"email" bson:"email"`
	Buyer    string             `json:"buyer" bson:"buyer"`
	Price    float64            `json:"price" bson:"price"`
	Comment  string             `json:"comment" bson:"comment"`
	Deadline time.Time          `json:"deadline" bson:"deadline"`
	Status   Status             `json:"status" bson:"status"`
}

type StatusPatchRequest struct {
	Status string `json:"status" validate:"required"`
}
