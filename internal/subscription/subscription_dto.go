package subscription

type CreateCheckoutRequest struct {
	PackageID string `json:"package_id" binding:"required,uuid"`
}

type PaymentSuccessRequest struct {
	SessionID string `json:"session_id" binding:"required,uuid"`
}

type PackageResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	EmployeeLimit int      `json:"employee_limit"`
	Features      []string `json:"features,omitempty"`
}

type CheckoutResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

type PaymentResponse struct {
	ID            string  `json:"id"`
	PackageName   string  `json:"package_name"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transaction_id"`
	PaidAt        string  `json:"paid_at"`
}
