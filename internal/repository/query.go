package repository

import (
	"regexp"

	"github.com/deppfellow/car-doctor/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceFilter matches services whose title contains search, ignoring
// case. The search text is matched literally. Empty search matches all.
func ServiceFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	return bson.M{
		"title": primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"},
	}
}

// ServiceSort orders the catalog by price.
func ServiceSort(order model.SortOrder) bson.D {
	direction := -1
	if order == model.SortAscending {
		direction = 1
	}
	return bson.D{{Key: "price", Value: direction}}
}

// ServiceDetailProjection limits a single service to its summary fields.
// _id is always returned by the server.
func ServiceDetailProjection() bson.M {
	return bson.M{"service_id": 1, "title": 1, "price": 1, "img": 1}
}

// OrderFilter matches orders owned by email. Empty email matches all.
func OrderFilter(email string) bson.M {
	if email == "" {
		return bson.M{}
	}
	return bson.M{"email": email}
}

func RecordIDFilter(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id}
}

// StatusUpdate replaces the status field and nothing else.
func StatusUpdate(status string) bson.M {
	return bson.M{"$set": bson.M{"status": status}}
}
