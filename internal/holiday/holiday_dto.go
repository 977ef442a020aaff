package holiday

type CreateHolidayRequest struct {
	Date     string `json:"date" binding:"required"`
	Name     string `json:"name" binding:"required"`
	IsPublic *bool  `json:"is_public"`
	Country  string `json:"country"`
}

type UpdateHolidayRequest struct {
	Date     string `json:"date" binding:"required"`
	Name     string `json:"name" binding:"required"`
	IsPublic *bool  `json:"is_public"`
	Country  string `json:"country"`
}

type HolidayResponse struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Name     string `json:"name"`
	IsPublic bool   `json:"is_public"`
	Country  string `json:"country"`
}
