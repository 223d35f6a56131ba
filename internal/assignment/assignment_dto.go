package assignment

type ListFilter struct {
	Search string
	Type   string
	Status string
	Limit  int
	Skip   int
}

type AssignmentResponse struct {
	ID             string  `json:"id"`
	AssetID        string  `json:"asset_id"`
	AssetName      string  `json:"asset_name"`
	AssetImage     string  `json:"asset_image,omitempty"`
	AssetType      string  `json:"asset_type"`
	EmployeeEmail  string  `json:"employee_email"`
	EmployeeName   string  `json:"employee_name"`
	HREmail        string  `json:"hr_email"`
	CompanyName    string  `json:"company_name"`
	AssignmentDate string  `json:"assignment_date"`
	ReturnDate     *string `json:"return_date,omitempty"`
	Status         string  `json:"status"`
}
