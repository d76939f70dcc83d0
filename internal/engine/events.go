package engine

// Event is anything that can move a match forward
type Event interface {
	isEvent()
}

// ChatMessage is a lobby line that is not a recognised lobby-bot notice
type ChatMessage struct {
	Sender string
	Text   string
}

// LobbyCreated is reported once the lobby-bot opened the match lobby
type LobbyCreated struct {
	LinkID int
}

// LobbyClosed is reported when the lobby was closed
type LobbyClosed struct{}

// MapChanged is reported after the lobby switched beatmap
type MapChanged struct {
	BeatmapID int
}

// PlayerFinished carries one player's final score on the current map
type PlayerFinished struct {
	Player string
	Score  int64
}

// AllReady is reported when every slot in the lobby is ready
type AllReady struct{}

// CountdownElapsed is reported when a lobby timer runs out
type CountdownElapsed struct{}

// MatchFinished is reported when a map finished playing
type MatchFinished struct{}

// TimerFired is the expiry of a timer the engine scheduled
type TimerFired struct {
	Timer TimerKind
	Gen   uint64
}

func (ChatMessage) isEvent()      {}
func (LobbyCreated) isEvent()     {}
func (LobbyClosed) isEvent()      {}
func (MapChanged) isEvent()       {}
func (PlayerFinished) isEvent()   {}
func (AllReady) isEvent()         {}
func (CountdownElapsed) isEvent() {}
func (MatchFinished) isEvent()    {}
func (TimerFired) isEvent()       {}
