package leave

type CreateLeaveRequest struct {
	PersonID  string `json:"person_id" binding:"required,uuid"`
	LeaveType string `json:"leave_type" binding:"required,oneof=ANNUAL SICK UNPAID"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

type CheckAvailabilityRequest struct {
	PersonID  string `json:"person_id" binding:"required,uuid"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type ConflictRange struct {
	LeaveID   string `json:"leave_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

type HolidayInfo struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type CheckAvailabilityResponse struct {
	Available     bool            `json:"available"`
	Conflicts     []ConflictRange `json:"conflicts"`
	Holidays      []HolidayInfo   `json:"holidays"`
	UsedDays      int             `json:"used_days"`
	RemainingDays int             `json:"remaining_days"`
	RequestedDays int             `json:"requested_days"`
}

type LeaveResponse struct {
	ID        string  `json:"id"`
	PersonID  string  `json:"person_id"`
	LeaveType string  `json:"leave_type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	TotalDays int     `json:"total_days"`
	Reason    string  `json:"reason"`
	Status    string  `json:"status"`
	CreatedBy string  `json:"created_by"`
	DecidedBy *string `json:"decided_by,omitempty"`
	DecidedAt *string `json:"decided_at,omitempty"`
}
