package domain

import "time"

// Product is the catalog entity. The id is an opaque string so the file and
// document drivers share one shape; the file driver assigns UUIDs and the
// mongo driver assigns ObjectID hex strings. Timestamps are maintained by
// the document driver only.
type Product struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Code        string    `bson:"code" json:"code"`
	Price       float64   `bson:"price" json:"price"`
	Status      bool      `bson:"status" json:"status"`
	Stock       int64     `bson:"stock" json:"stock"`
	Category    string    `bson:"category" json:"category"`
	Thumbnails  []string  `bson:"thumbnails" json:"thumbnails"`
	CreatedAt   time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ProductPatch carries a partial update. Nil fields keep their prior values;
// the id is never part of a patch.
type ProductPatch struct {
	Title       *string
	Description *string
	Code        *string
	Price       *float64
	Status      *bool
	Stock       *int64
	Category    *string
	Thumbnails  *[]string
}

// Apply overwrites the set fields of p onto product.
func (p ProductPatch) Apply(product *Product) {
	if p.Title != nil {
		product.Title = *p.Title
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Code != nil {
		product.Code = *p.Code
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Status != nil {
		product.Status = *p.Status
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Thumbnails != nil {
		product.Thumbnails = *p.Thumbnails
	}
}
