package storage

import (
	"context"
	"errors"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// OpenMySQL connects with the given DSN and migrates the schema. Used when
// the service is configured with a persistent backend instead of the
// default in-memory stores.
func OpenMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&IncidentReport{},
		&VoterRegistration{},
		&Candidate{},
		&Election{},
		&Vote{},
	); err != nil {
		return nil, err
	}
	return db, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// duplicateKey reports whether err is a MySQL duplicate-entry error on the
// named unique index. The unique indexes back the same invariants the
// in-memory stores enforce, so concurrent inserts cannot race past a
// handler-level check.
func duplicateKey(err error, index string) bool {
	var mysqlErr *gomysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != 1062 {
		return false
	}
	return strings.Contains(mysqlErr.Message, index)
}

type GormIncidentStorage struct {
	DB *gorm.DB
}

func (s *GormIncidentStorage) Get(ctx context.Context, id string) (*IncidentReport, error) {
	var report IncidentReport
	if err := s.DB.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &report, nil
}

func (s *GormIncidentStorage) List(ctx context.Context, filter IncidentFilter) ([]*IncidentReport, error) {
	q := s.DB.WithContext(ctx).Model(&IncidentReport{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Severity != "" {
		q = q.Where("severity = ?", filter.Severity)
	}
	if filter.ReportedBy != "" {
		q = q.Where("reported_by = ?", filter.ReportedBy)
	}
	if filter.Verified != nil {
		q = q.Where("verified = ?", *filter.Verified)
	}
	var reports []*IncidentReport
	if err := q.Order("timestamp DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *GormIncidentStorage) Create(ctx context.Context, report *IncidentReport) error {
	return s.DB.WithContext(ctx).Create(report).Error
}

func (s *GormIncidentStorage) Update(ctx context.Context, report *IncidentReport) error {
	res := s.DB.WithContext(ctx).Model(&IncidentReport{ID: report.ID}).Select("*").Updates(report)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormIncidentStorage) Delete(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Delete(&IncidentReport{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type GormVoterStorage struct {
	DB *gorm.DB
}

func (s *GormVoterStorage) Get(ctx context.Context, id string) (*VoterRegistration, error) {
	return s.firstVoter(ctx, "id = ?", id)
}

func (s *GormVoterStorage) GetByWallet(ctx context.Context, wallet string) (*VoterRegistration, error) {
	return s.firstVoter(ctx, "LOWER(wallet_address) = LOWER(?)", wallet)
}

func (s *GormVoterStorage) GetByNationalID(ctx context.Context, nationalID string) (*VoterRegistration, error) {
	return s.firstVoter(ctx, "national_id = ?", nationalID)
}

func (s *GormVoterStorage) GetByEmail(ctx context.Context, email string) (*VoterRegistration, error) {
	return s.firstVoter(ctx, "LOWER(email) = LOWER(?)", email)
}

func (s *GormVoterStorage) firstVoter(ctx context.Context, query string, arg any) (*VoterRegistration, error) {
	var registration VoterRegistration
	if err := s.DB.WithContext(ctx).First(&registration, query, arg).Error; err != nil {
		return nil, translate(err)
	}
	return &registration, nil
}

func (s *GormVoterStorage) GetAll(ctx context.Context) ([]*VoterRegistration, error) {
	var registrations []*VoterRegistration
	if err := s.DB.WithContext(ctx).Order("registered_at DESC").Find(&registrations).Error; err != nil {
		return nil, err
	}
	return registrations, nil
}

func (s *GormVoterStorage) Create(ctx context.Context, registration *VoterRegistration) error {
	err := s.DB.WithContext(ctx).Create(registration).Error
	switch {
	case duplicateKey(err, "idx_voters_wallet"):
		return ErrDuplicateWallet
	case duplicateKey(err, "idx_voters_national_id"):
		return ErrDuplicateNationalID
	case duplicateKey(err, "idx_voters_email"):
		return ErrDuplicateEmail
	}
	return err
}

func (s *GormVoterStorage) Update(ctx context.Context, registration *VoterRegistration) error {
	res := s.DB.WithContext(ctx).Model(&VoterRegistration{ID: registration.ID}).Select("*").Updates(registration)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormVoterStorage) Delete(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Delete(&VoterRegistration{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type GormCandidateStorage struct {
	DB *gorm.DB
}

func (s *GormCandidateStorage) Get(ctx context.Context, id string) (*Candidate, error) {
	var candidate Candidate
	if err := s.DB.WithContext(ctx).First(&candidate, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &candidate, nil
}

func (s *GormCandidateStorage) GetByWallet(ctx context.Context, wallet string) (*Candidate, error) {
	var candidate Candidate
	err := s.DB.WithContext(ctx).First(&candidate, "LOWER(wallet_address) = LOWER(?)", wallet).Error
	if err != nil {
		return nil, translate(err)
	}
	return &candidate, nil
}

func (s *GormCandidateStorage) List(ctx context.Context, filter CandidateFilter) ([]*Candidate, error) {
	q := s.DB.WithContext(ctx).Model(&Candidate{})
	if filter.ElectionID != "" {
		q = q.Where("election_id = ?", filter.ElectionID)
	}
	if filter.Party != "" {
		q = q.Where("LOWER(party) = LOWER(?)", filter.Party)
	}
	if filter.Position != "" {
		q = q.Where("LOWER(position) = LOWER(?)", filter.Position)
	}
	if filter.Verified != nil {
		q = q.Where("verified = ?", *filter.Verified)
	}
	var candidates []*Candidate
	if err := q.Order("registration_date DESC").Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

func (s *GormCandidateStorage) Create(ctx context.Context, candidate *Candidate) error {
	err := s.DB.WithContext(ctx).Create(candidate).Error
	if duplicateKey(err, "idx_candidates_wallet") {
		return ErrDuplicateWallet
	}
	return err
}

func (s *GormCandidateStorage) Update(ctx context.Context, candidate *Candidate) error {
	res := s.DB.WithContext(ctx).Model(&Candidate{ID: candidate.ID}).Select("*").Updates(candidate)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormCandidateStorage) Delete(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Delete(&Candidate{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type GormElectionStorage struct {
	DB *gorm.DB
}

func (s *GormElectionStorage) Get(ctx context.Context, id string) (*Election, error) {
	var election Election
	if err := s.DB.WithContext(ctx).First(&election, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &election, nil
}

func (s *GormElectionStorage) GetByTitle(ctx context.Context, title string) (*Election, error) {
	var election Election
	err := s.DB.WithContext(ctx).First(&election, "LOWER(title) = LOWER(?)", title).Error
	if err != nil {
		return nil, translate(err)
	}
	return &election, nil
}

func (s *GormElectionStorage) List(ctx context.Context, filter ElectionFilter) ([]*Election, error) {
	q := s.DB.WithContext(ctx).Model(&Election{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	var elections []*Election
	if err := q.Order("created_at DESC").Find(&elections).Error; err != nil {
		return nil, err
	}
	return elections, nil
}

func (s *GormElectionStorage) Create(ctx context.Context, election *Election) error {
	err := s.DB.WithContext(ctx).Create(election).Error
	if duplicateKey(err, "idx_elections_title") {
		return ErrDuplicateTitle
	}
	return err
}

func (s *GormElectionStorage) Update(ctx context.Context, election *Election) error {
	res := s.DB.WithContext(ctx).Model(&Election{ID: election.ID}).Select("*").Updates(election)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type GormVoteStorage struct {
	DB *gorm.DB
}

func (s *GormVoteStorage) Create(ctx context.Context, vote *Vote) error {
	// The composite unique index on (election_id, voter_address) is the
	// guard; a count-then-insert would race under REPEATABLE READ.
	err := s.DB.WithContext(ctx).Create(vote).Error
	if duplicateKey(err, "idx_votes_voter_election") {
		return ErrDuplicateVote
	}
	return err
}

func (s *GormVoteStorage) GetByVoterAndElection(ctx context.Context, voter, electionID string) (*Vote, error) {
	var vote Vote
	err := s.DB.WithContext(ctx).
		First(&vote, "LOWER(voter_address) = LOWER(?) AND election_id = ?", voter, electionID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &vote, nil
}

func (s *GormVoteStorage) ListByAddress(ctx context.Context, voter string) ([]*Vote, error) {
	var votes []*Vote
	err := s.DB.WithContext(ctx).
		Where("LOWER(voter_address) = LOWER(?)", voter).
		Order("timestamp DESC").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

func (s *GormVoteStorage) GetAll(ctx context.Context) ([]*Vote, error) {
	var votes []*Vote
	if err := s.DB.WithContext(ctx).Order("timestamp DESC").Find(&votes).Error; err != nil {
		return nil, err
	}
	return votes, nil
}
