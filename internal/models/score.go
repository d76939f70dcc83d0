package models

// ScoreResult is a finalized qualifier score for a player on one slot
type ScoreResult struct {
	ID       int `gorm:"primaryKey"`
	RoundID  int
	UserID   int
	Slot     string
	Score    int64
	Accuracy float64
	MaxCombo int
	Grade    string
}

// TableName overrides the gorm table name
func (ScoreResult) TableName() string {
	return "score_results"
}
