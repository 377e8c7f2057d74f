package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MenuItem is one dish on a cafe's menu.
type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Cafe        string             `bson:"cafe" json:"cafe"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"` // breakfast, main dish, dessert, drinks
	Photo       string             `bson:"photo" json:"photo"`
}

// CafeMenu groups menu items per cafe for the public listing.
type CafeMenu struct {
	Cafe  string     `json:"cafe"`
	Items []MenuItem `json:"items"`
}

// CafeSettings holds cafe-specific ordering rules. Some cafes require the
// student's grade on every order.
type CafeSettings struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	RequiresGrade bool               `bson:"requires_grade" json:"requires_grade"`
}
