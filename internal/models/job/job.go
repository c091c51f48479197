package job

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Buyer is the job owner embedded in a job document.
type Buyer struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email" validate:"required,email"`
	Photo string `json:"photo" bson:"photo"`
}

type JobRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Category    string    `json:"category" validate:"required"`
	MinPrice    float64   `json:"min_price" validate:"gte=0"`
	MaxPrice    float64   `json:"max_price" validate:"gte=0"`
	Deadline    time.Time `json:"deadline" validate:"required"`
	Buyer       Buyer     `json:"buyer" validate:"required"`
}

type Job struct {
	Id          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Category    string             `json:"category" bson:"category"`
	MinPrice    float64            `json:"min_price" bson:"min_price"`
	MaxPrice    float64            `json:"max_price" bson:"max_price"`
	Deadline    time.Time          `json:"deadline" bson:"deadline"`
	Buyer       Buyer              `json:"buyer" bson:"buyer"`
	BidCount    int64              `json:"bid_count" bson:"bid_count"`
}

// ListQuery is the parsed query string of GET /all-jobs.
type ListQuery struct {
	Category string
	Search   string
	Sort     string
}
