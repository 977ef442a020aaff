package team

type CreateTeamRequest struct {
	Name                string `json:"name" binding:"required"`
	MaxConcurrentLeaves int    `json:"max_concurrent_leaves" binding:"omitempty,min=1"`
}

type UpdateTeamRequest struct {
	Name                string `json:"name" binding:"required"`
	MaxConcurrentLeaves int    `json:"max_concurrent_leaves" binding:"omitempty,min=1"`
}

type TeamResponse struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	MaxConcurrentLeaves int    `json:"max_concurrent_leaves"`
}
