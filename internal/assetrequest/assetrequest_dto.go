package assetrequest

type SubmitRequest struct {
	AssetID string `json:"asset_id" binding:"required,uuid"`
	Note    string `json:"note" binding:"required,max=500"`
}

type ListFilter struct {
	Search string
	Type   string
	Status string
	Limit  int
	Skip   int
}

type RequestResponse struct {
	ID             string  `json:"id"`
	AssetID        string  `json:"asset_id"`
	AssetName      string  `json:"asset_name"`
	AssetImage     string  `json:"asset_image,omitempty"`
	AssetType      string  `json:"asset_type"`
	RequesterEmail string  `json:"requester_email"`
	RequesterName  string  `json:"requester_name"`
	HREmail        string  `json:"hr_email"`
	CompanyName    string  `json:"company_name"`
	Note           string  `json:"note"`
	RequestStatus  string  `json:"request_status"`
	RequestDate    string  `json:"request_date"`
	ApprovalDate   *string `json:"approval_date,omitempty"`
}
