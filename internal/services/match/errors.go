package match

// MatchError is a custom error type for match session errors
type MatchError string

// Error implements the error interface
func (e MatchError) Error() string {
	return string(e)
}

const (
	// ErrSetup wraps every failure that keeps a session from starting
	ErrSetup MatchError = "match setup failed"

	ErrMatchAlreadyRunning MatchError = "match already has a running session"
	ErrMatchNotFound       MatchError = "no running session for match"
	ErrSessionClosed       MatchError = "session is closed"

	ErrNilConfig         MatchError = "config cannot be nil"
	ErrNilTournamentRepo MatchError = "tournament repository cannot be nil"
	ErrNilSnapshotRepo   MatchError = "snapshot repository cannot be nil"
	ErrNilDialer         MatchError = "lobby dialer cannot be nil"
	ErrNilNotifier       MatchError = "notifier cannot be nil"
	ErrNilClock          MatchError = "clock cannot be nil"
	ErrNilUUIDGenerator  MatchError = "UUID generator cannot be nil"
)
