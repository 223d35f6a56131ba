package asset

type CreateAssetRequest struct {
	ProductName     string `json:"product_name" binding:"required"`
	ProductImage    string `json:"product_image"`
	ProductType     string `json:"product_type" binding:"required,oneof=Returnable Non-Returnable"`
	ProductQuantity int    `json:"product_quantity" binding:"required,gt=0"`
}

type UpdateAssetRequest struct {
	ProductName       string `json:"product_name" binding:"required"`
	ProductImage      string `json:"product_image"`
	ProductType       string `json:"product_type" binding:"required,oneof=Returnable Non-Returnable"`
	ProductQuantity   int    `json:"product_quantity" binding:"required,gt=0"`
	AvailableQuantity *int   `json:"available_quantity" binding:"required"`
}

// ListFilter narrows an already role-scoped listing; it can never widen it.
type ListFilter struct {
	Search string
	Type   string
	Limit  int
	Skip   int
}

type AssetResponse struct {
	ID                string `json:"id"`
	ProductName       string `json:"product_name"`
	ProductImage      string `json:"product_image,omitempty"`
	ProductType       string `json:"product_type"`
	ProductQuantity   int    `json:"product_quantity"`
	AvailableQuantity int    `json:"available_quantity"`
	CompanyName       string `json:"company_name"`
	HREmail           string `json:"hr_email"`
	DateAdded         string `json:"date_added"`
}
