package models

// RoundBeatmap is one entry of a round's map pool
type RoundBeatmap struct {
	// Slot is the unique label within the round, e.g. HD2 or TB1
	Slot string `json:"slot"`

	// BeatmapID is the osu! beatmap (difficulty) id loaded with !mp map
	BeatmapID int `json:"beatmap_id"`
}

// Round holds the rules shared by every match of a tournament stage
type Round struct {
	ID          int `gorm:"primaryKey"`
	DisplayName string

	// BestOf is the number of maps needed to cover a full match, always odd
	BestOf int

	// BanRounds is how many ban phases the round runs (0, 1 or 2)
	BanRounds int

	// SecondBanAfter is the pick count that opens the second ban phase; zero picks the default
	SecondBanAfter int

	// Mode is the match type played in this round
	Mode MatchType

	// MapPool is the ordered pool, tiebreaker included
	MapPool []RoundBeatmap `gorm:"type:jsonb;serializer:json"`
}

// TableName overrides the gorm table name
func (Round) TableName() string {
	return "rounds"
}
