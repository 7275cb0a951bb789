package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Species is a known animal species, e.g. name "dog", label "Dog"
type Species struct {
	ID    primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name  string             `json:"name" bson:"name"`
	Label string             `json:"label" bson:"label"`
}
