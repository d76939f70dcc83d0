package models

import (
	"time"
)

// TeamColor identifies one side of an elimination match
type TeamColor string

const (
	// TeamNone is used for choices no team made, such as a forced tiebreaker
	TeamNone TeamColor = "none"

	// TeamRed is the first team of a match room
	TeamRed TeamColor = "red"

	// TeamBlue is the second team of a match room
	TeamBlue TeamColor = "blue"
)

// Other returns the opposing team. TeamNone has no opponent.
func (c TeamColor) Other() TeamColor {
	switch c {
	case TeamRed:
		return TeamBlue
	case TeamBlue:
		return TeamRed
	default:
		return TeamNone
	}
}

// MatchType selects which flow drives a lobby
type MatchType string

const (
	// MatchTypeElimination is a two team ban/pick match
	MatchTypeElimination MatchType = "elimination"

	// MatchTypeQualifiers plays every map in the pool once
	MatchTypeQualifiers MatchType = "qualifiers"
)

// RoundChoice is a single ban or pick made during the draft
type RoundChoice struct {
	// Slot is the pool label, e.g. NM1
	Slot string `json:"slot"`

	// Team is the side that made the choice
	Team TeamColor `json:"team"`
}

// MatchRoom is a scheduled elimination match
type MatchRoom struct {
	// ID is the match identifier staff use in commands, e.g. A3
	ID string `gorm:"primaryKey"`

	// RoundID references the round whose rules and pool apply
	RoundID int
	Round   Round `gorm:"foreignKey:RoundID"`

	TeamRedID int
	TeamRed   User `gorm:"foreignKey:TeamRedID"`

	TeamBlueID int
	TeamBlue   User `gorm:"foreignKey:TeamBlueID"`

	// RefereeID is the staff member scheduled to referee, if any
	RefereeID *int

	// StartTime is the scheduled start
	StartTime time.Time

	// EndTime is set when the automation stops
	EndTime *time.Time

	// BannedMaps and PickedMaps are written back once the match stops
	BannedMaps []RoundChoice `gorm:"type:jsonb;serializer:json"`
	PickedMaps []RoundChoice `gorm:"type:jsonb;serializer:json"`

	// MpLinkID is the lobby number from https://osu.ppy.sh/mp/<id>
	MpLinkID *int
}

// TableName overrides the gorm table name
func (MatchRoom) TableName() string {
	return "match_rooms"
}

// QualifierRoom is a qualifiers lobby that plays the whole pool
type QualifierRoom struct {
	ID string `gorm:"primaryKey"`

	RoundID int
	Round   Round `gorm:"foreignKey:RoundID"`

	StartTime time.Time
	RefereeID *int

	// RequestedBy is the user that asked for this lobby slot
	RequestedBy *int
	Approved    bool

	MpLinkID *int

	Players []Player `gorm:"foreignKey:QualifierRoomID"`
}

// TableName overrides the gorm table name
func (QualifierRoom) TableName() string {
	return "qualifier_rooms"
}

// Player registers a user in a qualifier room
type Player struct {
	ID              int `gorm:"primaryKey"`
	UserID          int
	User            User `gorm:"foreignKey:UserID"`
	QualifierRoomID string
}

// TableName overrides the gorm table name
func (Player) TableName() string {
	return "players"
}
