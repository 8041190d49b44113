package models

import (
	"fmt"
	"time"

	"github.com/Sanenelisiwe1975/Baxela/storage"
)

const MinimumVotingAge = 18

type VoterRegisterRequest struct {
	WalletAddress string          `json:"walletAddress"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	DateOfBirth   string          `json:"dateOfBirth"` // YYYY-MM-DD
	NationalID    string          `json:"nationalId"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       storage.Address `json:"address"`
}

func (r *VoterRegisterRequest) Validate(now time.Time) []string {
	errs := ValidateFields([]FieldRule{
		{Name: "walletAddress", Value: r.WalletAddress, Required: true, Pattern: WalletPattern,
			PatternMsg: "walletAddress must be a valid wallet address"},
		{Name: "firstName", Value: r.FirstName, Required: true},
		{Name: "lastName", Value: r.LastName, Required: true},
		{Name: "dateOfBirth", Value: r.DateOfBirth, Required: true},
		{Name: "nationalId", Value: r.NationalID, Required: true, MinLen: 6},
		{Name: "email", Value: r.Email, Required: true, Pattern: EmailPattern,
			PatternMsg: "email has an invalid format"},
		{Name: "phone", Value: r.Phone, Required: true, Pattern: PhonePattern,
			PatternMsg: "phone has an invalid format"},
		{Name: "address.street", Value: r.Address.Street, Required: true},
		{Name: "address.city", Value: r.Address.City, Required: true},
		{Name: "address.state", Value: r.Address.State, Required: true},
		{Name: "address.postalCode", Value: r.Address.PostalCode, Required: true},
		{Name: "address.country", Value: r.Address.Country, Required: true},
	})

	if r.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", r.DateOfBirth)
		if err != nil {
			errs = append(errs, "dateOfBirth must be a valid date in YYYY-MM-DD format")
		} else if AgeAt(dob, now) < MinimumVotingAge {
			errs = append(errs, fmt.Sprintf("voter must be at least %d years old", MinimumVotingAge))
		}
	}
	return errs
}

// AgeAt computes full years between dob and now, adjusting when the
// birthday has not yet been reached this year.
func AgeAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

type VoterStatusUpdateRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

func (r *VoterStatusUpdateRequest) Validate() []string {
	return ValidateFields([]FieldRule{
		{Name: "status", Value: r.Status, Required: true, Enum: ValidVerificationStatuses},
	})
}
