package model

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateJobRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	CompanyURL  string `json:"company_url"`
	Description string `json:"description"`
	Location    string `json:"location"`
	DatePosted  string `json:"date_posted"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateJobRequest struct {
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	CompanyURL  *string `json:"company_url"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	DatePosted  *string `json:"date_posted"`
	IsActive    *bool   `json:"is_active"`
}
