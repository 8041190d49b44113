package models

import "github.com/Sanenelisiwe1975/Baxela/storage"

type VoteCastRequest struct {
	ElectionID   string `json:"electionId"`
	CandidateID  string `json:"candidateId"`
	VoterAddress string `json:"voterAddress"`
}

func (r *VoteCastRequest) Validate() []string {
	return ValidateFields([]FieldRule{
		{Name: "electionId", Value: r.ElectionID, Required: true},
		{Name: "candidateId", Value: r.CandidateID, Required: true},
		{Name: "voterAddress", Value: r.VoterAddress, Required: true, Pattern: WalletPattern,
			PatternMsg: "voterAddress must be a valid wallet address"},
	})
}

type VoteCastResponse struct {
	Success bool          `json:"success"`
	Vote    *storage.Vote `json:"vote"`
}

type VoteListResponse struct {
	Success bool            `json:"success"`
	Votes   []*storage.Vote `json:"votes"`
}
