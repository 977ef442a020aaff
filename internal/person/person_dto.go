package person

type CreatePersonRequest struct {
	FullName string  `json:"full_name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Role     string  `json:"role" binding:"required"`
	TeamID   *string `json:"team_id"`
	HireDate string  `json:"hire_date" binding:"required"`
}

type UpdatePersonRequest struct {
	FullName string  `json:"full_name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Role     string  `json:"role" binding:"required"`
	TeamID   *string `json:"team_id"`
	HireDate string  `json:"hire_date" binding:"required"`
	IsActive *bool   `json:"is_active"`
}

type PersonResponse struct {
	ID          string  `json:"id"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	TeamID      *string `json:"team_id,omitempty"`
	HireDate    string  `json:"hire_date"`
	IsActive    bool    `json:"is_active"`
	Entitlement int     `json:"entitlement"`
}
