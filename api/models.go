package api

import "time"

// School is a monitored school record.
type School struct {
	ID         int64     `json:"id"`
	SchoolID   string    `json:"school_id"`
	SchoolName string    `json:"school_name"`
	Region     string    `json:"region"`
	CP         string    `json:"cp"`
	HashCount  int       `json:"hash_count,omitempty"`
	UpdateTime time.Time `json:"update_time"`
}

// SchoolList is the paginated school listing.
type SchoolList struct {
	Total  int64    `json:"total"`
	Items  []School `json:"items"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

// TrafficData is one traffic sample for a school.
type TrafficData struct {
	ID         int64     `json:"id"`
	CreateTime time.Time `json:"create_time"`
	SchoolID   string    `json:"school_id"`
	SchoolName string    `json:"school_name"`
	Region     string    `json:"region"`
	CP         string    `json:"cp"`
	TotalRecv  int64     `json:"total_recv"`
	TotalSend  int64     `json:"total_send"`
}

// TrafficSummary is an aggregated traffic row.
type TrafficSummary struct {
	CreateTime time.Time `json:"create_time"`
	SchoolID   string    `json:"school_id,omitempty"`
	SchoolName string    `json:"school_name,omitempty"`
	Region     string    `json:"region,omitempty"`
	CP         string    `json:"cp,omitempty"`
	TotalRecv  int64     `json:"total_recv"`
	TotalSend  int64     `json:"total_send"`
	Total      int64     `json:"total"`
}

// SettlementTask is a daily or weekly settlement run.
type SettlementTask struct {
	ID             int64     `json:"id"`
	TaskType       string    `json:"task_type"` // "daily" or "weekly"
	TaskDate       string    `json:"task_date"`
	Status         string    `json:"status"` // pending, running, success, failed
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	ProcessedCount int64     `json:"processed_count"`
	ErrorMessage   string    `json:"error_message"`
	CreateTime     time.Time `json:"create_time"`
	UpdateTime     time.Time `json:"update_time"`
}

// TaskList is the settlement task listing.
type TaskList struct {
	Total int64            `json:"total"`
	Items []SettlementTask `json:"items"`
}

// Settlement is a computed settlement value for a school and date.
type Settlement struct {
	ID              int64     `json:"id"`
	SchoolID        string    `json:"school_id"`
	SchoolName      string    `json:"school_name"`
	Region          string    `json:"region"`
	CP              string    `json:"cp"`
	SettlementValue int64     `json:"settlement_value"`
	SettlementTime  time.Time `json:"settlement_time"`
	SettlementDate  time.Time `json:"settlement_date"`
	CreateTime      time.Time `json:"create_time"`
}

// SettlementList is the settlement data listing.
type SettlementList struct {
	Total int64        `json:"total"`
	Items []Settlement `json:"items"`
}

// CustomerRate is a per-customer settlement rate.
type CustomerRate struct {
	ID         int64     `json:"id"`
	Customer   string    `json:"customer"`
	Region     string    `json:"region"`
	CP         string    `json:"cp"`
	Rate       float64   `json:"rate"`
	UpdateTime time.Time `json:"update_time"`
}
