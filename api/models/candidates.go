package models

type CandidateCreateRequest struct {
	Name          string `json:"name"`
	Party         string `json:"party"`
	Position      string `json:"position"`
	Bio           string `json:"bio"`
	Experience    string `json:"experience"`
	Platform      string `json:"platform"`
	WalletAddress string `json:"walletAddress"`
	ElectionID    string `json:"electionId"`
}

func (r *CandidateCreateRequest) Validate() []string {
	return ValidateFields([]FieldRule{
		{Name: "name", Value: r.Name, Required: true},
		{Name: "party", Value: r.Party, Required: true},
		{Name: "position", Value: r.Position, Required: true},
		{Name: "bio", Value: r.Bio, Required: true},
		{Name: "experience", Value: r.Experience, Required: true},
		{Name: "platform", Value: r.Platform, Required: true},
		{Name: "electionId", Value: r.ElectionID, Required: true},
		{Name: "walletAddress", Value: r.WalletAddress, Required: true, Pattern: WalletPattern,
			PatternMsg: "walletAddress must be a valid wallet address"},
	})
}

// CandidateUpdateRequest is a partial update; id, walletAddress, verified,
// registrationDate and electionId are immutable and have no fields here.
type CandidateUpdateRequest struct {
	Name       *string `json:"name,omitempty"`
	Party      *string `json:"party,omitempty"`
	Position   *string `json:"position,omitempty"`
	Bio        *string `json:"bio,omitempty"`
	Experience *string `json:"experience,omitempty"`
	Platform   *string `json:"platform,omitempty"`
}
