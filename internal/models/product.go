package models

import "errors"

// Product is catalog entry, price is per bag in FC
type Product struct {
	ID          string
	Name        string
	Description string
	UnitPrice   float64
}

// fixed catalog of distributed cements
var Products = []Product{
	{
		ID:          "cem-42-5",
		Name:        "CEM II/B-LL 42,5 R",
		Description: "Ciment à haute résistance",
		UnitPrice:   28000,
	},
	{
		ID:          "cem-32-5",
		Name:        "CEM II/B-LL 32,5 R",
		Description: "Ciment à usage général",
		UnitPrice:   25000,
	},
}

var ErrUnknownProduct = errors.New("unknown product")

// ProductByID returns catalog product by id
func ProductByID(id string) (Product, error) {
	for _, p := range Products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrUnknownProduct
}
