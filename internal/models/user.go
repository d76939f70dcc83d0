package models

// User is a registered tournament participant
type User struct {
	ID        int `gorm:"primaryKey"`
	OsuID     int
	DiscordID string

	OsuData OsuUser `gorm:"foreignKey:OsuID"`
}

// TableName overrides the gorm table name
func (User) TableName() string {
	return "users"
}

// DisplayName returns the osu! username, which is also the IRC nick
func (u *User) DisplayName() string {
	return u.OsuData.Username
}

// OsuUser caches the public osu! profile of a user
type OsuUser struct {
	ID       int `gorm:"primaryKey"`
	Username string

	GlobalRank  int
	CountryRank int
}

// TableName overrides the gorm table name
func (OsuUser) TableName() string {
	return "osu_users"
}

// RefereeInfo holds the credentials the bot uses to run lobbies for a referee
type RefereeInfo struct {
	ID          int `gorm:"primaryKey"`
	DisplayName string
	DiscordID   string
	OsuID       int

	// IRCPassword is the password from https://osu.ppy.sh/home/account/edit#legacy-api
	IRCPassword string `json:"-"`
}

// TableName overrides the gorm table name
func (RefereeInfo) TableName() string {
	return "referees"
}
