package model

// ValidationRequest 发往考勤网关的校验请求。
// 是否算 check-in 还是 check-out 由网关决定，这里不传 action。
type ValidationRequest struct {
	Phone     string  `json:"phone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ValidationResult 考勤网关的校验结果。
// Valid=false 时 Message 总是携带网关自己的拒绝理由，管道原样转发。
type ValidationResult struct {
	Valid               bool   `json:"valid"`
	Message             string `json:"message"`
	BranchName          string `json:"branch_name,omitempty"`
	Time                string `json:"time,omitempty"`
	Timezone            string `json:"timezone,omitempty"`
	TimeWorkedFormatted string `json:"time_worked_formatted,omitempty"`
	HoursWorked         string `json:"hours_worked,omitempty"`
}

// WorkedDuration 网关两个字段名都出现过，取先有的那个
func (r ValidationResult) WorkedDuration() string {
	if r.TimeWorkedFormatted != "" {
		return r.TimeWorkedFormatted
	}
	return r.HoursWorked
}
