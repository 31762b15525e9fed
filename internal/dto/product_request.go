package dto

// ProductRequest is the creation payload. Status defaults to true when
// omitted, thumbnails to an empty list.
type ProductRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Code        string   `json:"code"`
	Price       float64  `json:"price"`
	Status      *bool    `json:"status"`
	Stock       int64    `json:"stock"`
	Category    string   `json:"category"`
	Thumbnails  []string `json:"thumbnails"`
}

// ProductUpdateRequest is the partial-update payload. Absent fields keep
// their prior values. An id in the body is ignored; the path id wins.
type ProductUpdateRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Code        *string   `json:"code"`
	Price       *float64  `json:"price"`
	Status      *bool     `json:"status"`
	Stock       *int64    `json:"stock"`
	Category    *string   `json:"category"`
	Thumbnails  *[]string `json:"thumbnails"`
}
