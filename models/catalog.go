package models

// Category groups services on the storefront. Services reference a
// category by ID only; deleting a category does not cascade.
type Category struct {
	ID       string `bson:"id" json:"id"`
	Title    string `bson:"title" json:"title"`
	ImageURL string `bson:"img_url" json:"img_url"`
}

// Service is a bookable spa service. Only the admin catalog endpoints
// mutate it; customer surfaces treat it as read-only.
type Service struct {
	ID          string  `bson:"id" json:"id"`
	Title       string  `bson:"title" json:"title"`
	Price       float64 `bson:"price" json:"price"` // decimal major units, USD
	Description string  `bson:"description" json:"description"`
	ImageURL    string  `bson:"img_url" json:"img_url"`
	CategoryID  string  `bson:"category_id" json:"categoryId"`
}
