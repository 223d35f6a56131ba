package team

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type MemberResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	ProfileImage string `json:"profile_image,omitempty"`
	DateOfBirth  string `json:"date_of_birth,omitempty"`
}

type TeamResponse struct {
	CompanyName string           `json:"company_name"`
	CompanyLogo string           `json:"company_logo,omitempty"`
	HREmail     string           `json:"hr_email"`
	Members     []MemberResponse `json:"members"`
}

type SeatUsageResponse struct {
	PackageLimit     int `json:"package_limit"`
	CurrentEmployees int `json:"current_employees"`
}
