package bookingRepo

import (
	"go.mongodb.org/mongo-driver/mongo"

	"talentshout/database"
)

// MongoBookingRepo implements Repository using MongoDB. It owns the bookings
// and payments collections (payments are written inside the confirm
// transaction) plus the counters collection used for code allocation.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	paymentColl *mongo.Collection
	counterColl *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() Repository {
	db := database.DB()
	return &MongoBookingRepo{
		bookingColl: db.Collection("bookings"),
		paymentColl: db.Collection("payments"),
		counterColl: db.Collection("counters"),
	}
}
