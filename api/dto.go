/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the domain
  model from the wire contract. Dates travel as YYYY-MM-DD strings; hours
  travel as JSON numbers and are converted to decimals at the boundary.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/nickharris808/tribalhours/timesheet"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// LoginRequest carries the identity fields. Which fields matter depends on
// the configured identity scheme; extras are ignored.
type LoginRequest struct {
	Email       string `json:"email,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UserDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	LastName string `json:"last_name"`
	IsAdmin  bool   `json:"is_admin"`
}

type PeriodDTO struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// EntryDTO is one day's editable row.
type EntryDTO struct {
	Date     string  `json:"date"`
	Hours    float64 `json:"hours"`
	Tasks    string  `json:"tasks"`
	Facility string  `json:"facility"`
}

type EntriesResponse struct {
	Period  PeriodDTO  `json:"period"`
	Entries []EntryDTO `json:"entries"`
}

type SaveEntriesRequest struct {
	Entries []EntryDTO `json:"entries"`
}

type ReportRowDTO struct {
	UserID     string  `json:"user_id"`
	Email      string  `json:"email"`
	LastName   string  `json:"last_name"`
	TotalHours float64 `json:"total_hours"`
}

type ReportDetailDTO struct {
	UserID   string  `json:"user_id"`
	Email    string  `json:"email"`
	LastName string  `json:"last_name"`
	Date     string  `json:"date"`
	Hours    float64 `json:"hours"`
	Tasks    string  `json:"tasks"`
	Facility string  `json:"facility"`
	Period   string  `json:"period"`
	Month    int     `json:"month"`
	Year     int     `json:"year"`
}

type ReportResponse struct {
	Period  PeriodDTO         `json:"period"`
	Rows    []ReportRowDTO    `json:"rows"`
	Detail  []ReportDetailDTO `json:"detail"`
	Message string            `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func periodDTO(p timesheet.Period) PeriodDTO {
	return PeriodDTO{Label: string(p.Label), Start: p.Start.String(), End: p.End.String()}
}

func userDTO(u timesheet.User) UserDTO {
	return UserDTO{ID: u.ID, Email: u.Email, LastName: u.LastName, IsAdmin: u.IsAdmin}
}

func entryDTO(e timesheet.WorkEntry) EntryDTO {
	return EntryDTO{
		Date:     e.Date.String(),
		Hours:    e.Hours.InexactFloat64(),
		Tasks:    e.Tasks,
		Facility: e.Facility,
	}
}

func detailDTO(d timesheet.DetailRow) ReportDetailDTO {
	period := d.Period()
	return ReportDetailDTO{
		UserID:   d.UserID,
		Email:    d.Email,
		LastName: d.LastName,
		Date:     d.Date.String(),
		Hours:    d.Hours.InexactFloat64(),
		Tasks:    d.Tasks,
		Facility: d.Facility,
		Period:   string(period.Label),
		Month:    int(d.Date.Month()),
		Year:     d.Date.Year(),
	}
}

func (dto EntryDTO) toEntry(userID string) (timesheet.WorkEntry, error) {
	date, err := timesheet.ParseDate(dto.Date)
	if err != nil {
		return timesheet.WorkEntry{}, err
	}
	return timesheet.WorkEntry{
		UserID:   userID,
		Date:     date,
		Hours:    decimal.NewFromFloat(dto.Hours),
		Tasks:    dto.Tasks,
		Facility: dto.Facility,
	}, nil
}
