package balance

type UpsertBalanceRequest struct {
	PersonID    string `json:"person_id" binding:"required,uuid"`
	Year        int    `json:"year" binding:"required"`
	Entitlement int    `json:"entitlement" binding:"required"`
	Used        int    `json:"used"`
	Pending     int    `json:"pending"`
	Carryover   int    `json:"carryover"`
}

type BalanceResponse struct {
	ID          string `json:"id"`
	PersonID    string `json:"person_id"`
	Year        int    `json:"year"`
	Entitlement int    `json:"entitlement"`
	Used        int    `json:"used"`
	Pending     int    `json:"pending"`
	Carryover   int    `json:"carryover"`
	Remaining   int    `json:"remaining"`
}
