package scanner

import (
	model "github.com/Lucasbjorklund31/challengebot/internal/models"
)

// RowScanner est l'interface minimale commune à pgx.Row et pgx.Rows
type RowScanner interface {
	Scan(dest ...interface{}) error
}

// ScanChallenge scanne une ligne SQL vers un Challenge
func ScanChallenge(row RowScanner) (*model.Challenge, error) {
	var c model.Challenge
	err := row.Scan(
		&c.ID, &c.Description, &c.ScoringSystem, &c.Variant,
		&c.StartDate, &c.EndDate, &c.Status, &c.CreatedBy, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ScanScore scanne une ligne SQL vers un Score
func ScanScore(row RowScanner) (*model.Score, error) {
	var s model.Score
	err := row.Scan(&s.ID, &s.UserID, &s.ChallengeID, &s.Date, &s.Points, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ScanBaseline scanne une ligne SQL vers un BaselineRecord
func ScanBaseline(row RowScanner) (*model.BaselineRecord, error) {
	var b model.BaselineRecord
	err := row.Scan(&b.UserID, &b.ChallengeID, &b.BaselineValue, &b.CurrentValue, &b.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ScanParticipant scanne une ligne SQL vers un Participant
func ScanParticipant(row RowScanner) (*model.Participant, error) {
	var p model.Participant
	err := row.Scan(&p.ID, &p.DisplayName, &p.RegisteredAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ScanAdmin scanne une ligne SQL vers un Admin
func ScanAdmin(row RowScanner) (*model.Admin, error) {
	var a model.Admin
	err := row.Scan(&a.UserID, &a.AddedBy, &a.AddedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
