package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type Product struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Price    float64            `json:"price" bson:"price"`
	Category string             `json:"category" bson:"category"`
	Variants []Variant          `json:"variants" bson:"variants"`
}

// Variant is embedded in its Product and has no identity of its own.
type Variant struct {
	Color string `json:"color" bson:"color"`
	Size  string `json:"size" bson:"size"`
	Stock int    `json:"stock" bson:"stock"`
}

// Normalize replaces a nil variant list so it encodes as an empty array
// in both BSON and JSON.
func (p *Product) Normalize() {
	if p.Variants == nil {
		p.Variants = []Variant{}
	}
}
