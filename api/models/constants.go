package models

import "regexp"

const (
	CategoryViolence             = "violence"
	CategoryVoterIntimidation    = "voter_intimidation"
	CategoryBallotTampering      = "ballot_tampering"
	CategoryVoterFraud           = "voter_fraud"
	CategoryEquipmentMalfunction = "equipment_malfunction"
	CategoryMisinformation       = "misinformation"
	CategoryAccessibility        = "accessibility"
	CategoryOther                = "other"
)

var ValidIncidentCategories = map[string]bool{
	CategoryViolence:             true,
	CategoryVoterIntimidation:    true,
	CategoryBallotTampering:      true,
	CategoryVoterFraud:           true,
	CategoryEquipmentMalfunction: true,
	CategoryMisinformation:       true,
	CategoryAccessibility:        true,
	CategoryOther:                true,
}

var ValidIncidentStatuses = map[string]bool{
	"pending":       true,
	"investigating": true,
	"resolved":      true,
	"dismissed":     true,
}

var ValidIncidentSeverities = map[string]bool{
	"low":      true,
	"medium":   true,
	"high":     true,
	"critical": true,
}

var ValidVerificationStatuses = map[string]bool{
	"pending":  true,
	"verified": true,
	"rejected": true,
}

var ValidElectionTypes = map[string]bool{
	"national":   true,
	"provincial": true,
	"municipal":  true,
}

var (
	WalletPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	EmailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	PhonePattern  = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)
)
