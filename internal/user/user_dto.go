package user

type CreateUserRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=80"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Role     string  `json:"role" binding:"required,oneof=admin manager staff"`
	PersonID *string `json:"person_id"`
}

type UpdateUserRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=80"`
	Email    string  `json:"email" binding:"required,email"`
	Password *string `json:"password"`
	Role     string  `json:"role" binding:"required,oneof=admin manager staff"`
	PersonID *string `json:"person_id"`
	IsActive *bool   `json:"is_active"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	PersonID  *string `json:"person_id,omitempty"`
	IsActive  bool    `json:"is_active"`
	LastLogin *string `json:"last_login,omitempty"`
	CreatedAt string  `json:"created_at"`
}
