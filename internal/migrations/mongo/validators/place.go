package validators

import "go.mongodb.org/mongo-driver/bson"

// Numbers are only type-checked: prices and guest counts are stored as given.
var PlaceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"owner",
			"title",
			"address",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"owner": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},

			"address": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 300,
			},

			"photos": bson.M{
				"bsonType": []string{"array", "null"},
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"perks": bson.M{
				"bsonType": []string{"array", "null"},
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"description": bson.M{"bsonType": "string"},
			"extraInfo":   bson.M{"bsonType": "string"},

			"checkIn":   bson.M{"bsonType": []string{"int", "long"}},
			"checkOut":  bson.M{"bsonType": []string{"int", "long"}},
			"maxGuests": bson.M{"bsonType": []string{"int", "long"}},
			"price":     bson.M{"bsonType": "number"},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
