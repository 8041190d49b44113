package models

import (
	"github.com/Sanenelisiwe1975/Baxela/storage"
)

type IncidentCreateRequest struct {
	Title       string               `json:"title"`
	Category    string               `json:"category"`
	Location    string               `json:"location"`
	Coordinates *storage.Coordinates `json:"coordinates,omitempty"`
	Description string               `json:"description"`
	ReportedBy  string               `json:"reportedBy"`
	Severity    string               `json:"severity,omitempty"`
}

func (r *IncidentCreateRequest) Validate() []string {
	rules := []FieldRule{
		{Name: "title", Value: r.Title, Required: true, MinLen: 5, MaxLen: 100},
		{Name: "description", Value: r.Description, Required: true, MinLen: 10, MaxLen: 1000},
		{Name: "location", Value: r.Location, Required: true, MinLen: 5},
		{Name: "reportedBy", Value: r.ReportedBy, Required: true, Pattern: WalletPattern,
			PatternMsg: "reportedBy must be a valid wallet address"},
		{Name: "category", Value: r.Category, Required: true, Enum: ValidIncidentCategories},
	}
	if r.Severity != "" {
		rules = append(rules, FieldRule{Name: "severity", Value: r.Severity, Enum: ValidIncidentSeverities})
	}
	return ValidateFields(rules)
}

type IncidentUpdateRequest struct {
	Status     *string `json:"status,omitempty"`
	Verified   *bool   `json:"verified,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	AssignedTo *string `json:"assignedTo,omitempty"`
}

func (r *IncidentUpdateRequest) Validate() []string {
	var rules []FieldRule
	if r.Status != nil {
		rules = append(rules, FieldRule{Name: "status", Value: *r.Status, Required: true, Enum: ValidIncidentStatuses})
	}
	return ValidateFields(rules)
}

// IncidentRecord wraps a stored report for list responses; Degraded is set
// when the pinned payload could not be fetched and local fields were used.
type IncidentRecord struct {
	*storage.IncidentReport
	Degraded bool `json:"degraded,omitempty"`
}

type IncidentCounts struct {
	ByStatus   map[string]int `json:"byStatus"`
	BySeverity map[string]int `json:"bySeverity"`
	Verified   int            `json:"verified"`
	Unverified int            `json:"unverified"`
}

type IncidentListResponse struct {
	Success   bool             `json:"success"`
	Total     int              `json:"total"`
	Counts    IncidentCounts   `json:"counts"`
	Incidents []IncidentRecord `json:"incidents"`
}

type IncidentCreateResponse struct {
	Success           bool                    `json:"success"`
	Incident          *storage.IncidentReport `json:"incident"`
	Pinned            bool                    `json:"pinned"`
	PinError          string                  `json:"pinError,omitempty"`
	AttachmentsFailed int                     `json:"attachmentsFailed,omitempty"`
}
