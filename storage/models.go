package storage

import "time"

type IncidentStatus string

const (
	IncidentStatusPending       IncidentStatus = "pending"
	IncidentStatusInvestigating IncidentStatus = "investigating"
	IncidentStatusResolved      IncidentStatus = "resolved"
	IncidentStatusDismissed     IncidentStatus = "dismissed"
)

type IncidentSeverity string

const (
	SeverityLow      IncidentSeverity = "low"
	SeverityMedium   IncidentSeverity = "medium"
	SeverityHigh     IncidentSeverity = "high"
	SeverityCritical IncidentSeverity = "critical"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

type ElectionType string

const (
	ElectionTypeNational   ElectionType = "national"
	ElectionTypeProvincial ElectionType = "provincial"
	ElectionTypeMunicipal  ElectionType = "municipal"
)

type ElectionStatus string

const (
	ElectionStatusDraft     ElectionStatus = "draft"
	ElectionStatusActive    ElectionStatus = "active"
	ElectionStatusCompleted ElectionStatus = "completed"
	ElectionStatusCancelled ElectionStatus = "cancelled"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type IncidentReport struct {
	ID          string           `json:"id" gorm:"primaryKey"`
	Title       string           `json:"title"`
	Category    string           `json:"category"`
	Location    string           `json:"location"`
	Coordinates *Coordinates     `json:"coordinates,omitempty" gorm:"serializer:json"`
	Description string           `json:"description"`
	ReportedBy  string           `json:"reportedBy"`
	Timestamp   time.Time        `json:"timestamp"`
	Status      IncidentStatus   `json:"status"`
	Severity    IncidentSeverity `json:"severity"`
	Verified    bool             `json:"verified"`
	Notes       string           `json:"notes,omitempty"`
	AssignedTo  string           `json:"assignedTo,omitempty"`
	Attachments []string         `json:"attachments,omitempty" gorm:"serializer:json"`
	IPFSHash    string           `json:"ipfsHash,omitempty"`
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type VoterRegistration struct {
	ID                 string             `json:"id" gorm:"primaryKey"`
	WalletAddress      string             `json:"walletAddress" gorm:"size:64;uniqueIndex:idx_voters_wallet"`
	FirstName          string             `json:"firstName"`
	LastName           string             `json:"lastName"`
	DateOfBirth        string             `json:"dateOfBirth"`
	NationalID         string             `json:"nationalId" gorm:"size:64;uniqueIndex:idx_voters_national_id"`
	Email              string             `json:"email" gorm:"size:255;uniqueIndex:idx_voters_email"`
	Phone              string             `json:"phone"`
	Address            Address            `json:"address" gorm:"serializer:json"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	Notes              string             `json:"notes,omitempty"`
	EligibleElections  []string           `json:"eligibleElections" gorm:"serializer:json"`
	RegisteredAt       time.Time          `json:"registeredAt"`
}

type Candidate struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name"`
	Party            string    `json:"party"`
	Position         string    `json:"position"`
	Bio              string    `json:"bio"`
	Experience       string    `json:"experience"`
	Platform         string    `json:"platform"`
	WalletAddress    string    `json:"walletAddress" gorm:"size:64;uniqueIndex:idx_candidates_wallet"`
	Verified         bool      `json:"verified"`
	RegistrationDate time.Time `json:"registrationDate"`
	ElectionID       string    `json:"electionId" gorm:"index"`
}

type Election struct {
	ID             string         `json:"id" gorm:"primaryKey"`
	Title          string         `json:"title" gorm:"size:255;uniqueIndex:idx_elections_title"`
	Description    string         `json:"description"`
	Type           ElectionType   `json:"type"`
	StartDate      time.Time      `json:"startDate"`
	EndDate        time.Time      `json:"endDate"`
	Status         ElectionStatus `json:"status"`
	Positions      []string       `json:"positions" gorm:"serializer:json"`
	TotalVotes     int            `json:"totalVotes"`
	EligibleVoters int            `json:"eligibleVoters"`
	CreatedBy      string         `json:"createdBy"`
	CreatedAt      time.Time      `json:"createdAt"`
}

type Vote struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	ElectionID      string    `json:"electionId" gorm:"size:128;uniqueIndex:idx_votes_voter_election"`
	CandidateID     string    `json:"candidateId"`
	VoterAddress    string    `json:"voterAddress" gorm:"size:64;uniqueIndex:idx_votes_voter_election"`
	Timestamp       time.Time `json:"timestamp"`
	TransactionHash string    `json:"transactionHash"`
	Verified        bool      `json:"verified"`
}
