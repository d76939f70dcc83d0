package lobby

//go:generate mockgen -package=mocks -destination=mocks/mock_lobby.go github.com/KirkDiggler/autoref/internal/lobby Dialer,Conn

import (
	"context"

	"github.com/KirkDiggler/autoref/internal/engine"
)

// Line is one message seen in a match lobby
type Line struct {
	// Sender is the nick that sent the line. It is empty for notices raised by the adapter itself.
	Sender string

	// Text is the raw message
	Text string

	// Event is the parsed form of the line
	Event engine.Event
}

// Handler receives lobby lines in arrival order
type Handler func(line Line)

// DialInput describes the lobby to open
type DialInput struct {
	// Nick and Password are the referee's IRC credentials
	Nick     string
	Password string

	// LobbyName is the title passed to the lobby-bot, e.g. "SS26: (Alpha) vs (Bravo)"
	LobbyName string

	// Private asks for a password protected lobby
	Private bool

	// Handler is called for every line of the lobby channel, starting with its creation notice
	Handler Handler
}

// Dialer opens match lobbies
type Dialer interface {
	Dial(ctx context.Context, input *DialInput) (Conn, error)
}

// Conn is an open lobby
type Conn interface {
	// Channel returns the lobby channel, e.g. #mp_123
	Channel() string

	// Send writes a line to the lobby channel
	Send(ctx context.Context, line string) error

	// Close leaves the lobby and drops the connection
	Close() error
}
