package dto

// ProductFilter holds the listing query parameters. Sort accepts "asc" or
// "desc" on price; anything else keeps insertion order. Status is a pointer
// so "no status filter" and "status=false" stay distinguishable.
type ProductFilter struct {
	Limit    int    `query:"limit"`
	Page     int    `query:"page"`
	Sort     string `query:"sort"`
	Category string `query:"category"`
	Status   *bool  `query:"status"`
}
