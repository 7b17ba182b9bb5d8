package validators

import "go.mongodb.org/mongo-driver/bson"

var AuditValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"actor",
			"action",
			"resource_type",
			"resource_id",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"actor":         bson.M{"bsonType": "string"},
			"action":        bson.M{"bsonType": "string"},
			"resource_type": bson.M{"bsonType": "string"},
			"resource_id":   bson.M{"bsonType": "string"},
			"reason":        bson.M{"bsonType": "string"},
			"request_id":    bson.M{"bsonType": "string"},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
