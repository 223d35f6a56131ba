package auth

type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Role         string `json:"role" binding:"required,oneof=hr employee"`
	DateOfBirth  string `json:"date_of_birth" binding:"required"`
	ProfileImage string `json:"profile_image"`

	// HR only
	CompanyName string `json:"company_name"`
	CompanyLogo string `json:"company_logo"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	ProfileImage string `json:"profile_image,omitempty"`
	DateOfBirth  string `json:"date_of_birth,omitempty"`

	CompanyName string `json:"company_name,omitempty"`
	CompanyLogo string `json:"company_logo,omitempty"`
	HREmail     string `json:"hr_email,omitempty"`

	SubscriptionTier string `json:"subscription_tier,omitempty"`
	PackageLimit     int    `json:"package_limit,omitempty"`
	CurrentEmployees int    `json:"current_employees"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type RoleResponse struct {
	Role string `json:"role"`
}
