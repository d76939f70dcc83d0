package engine

import "errors"

var (
	// ErrInvalidContext is returned when match metadata cannot drive a match
	ErrInvalidContext = errors.New("invalid match context")

	// ErrInvalidSnapshot is returned when a restored state contradicts the match context
	ErrInvalidSnapshot = errors.New("snapshot does not match the match context")

	// ErrSlotUnavailable is returned when a slot is unknown, already used or reserved
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrTiebreakerLocked is returned when the tiebreaker is requested before every regular pick was played
	ErrTiebreakerLocked = errors.New("tiebreaker is not playable yet")

	// ErrWinOverflow is returned when a team that already won the match would be awarded another map
	ErrWinOverflow = errors.New("win counter already at threshold")

	// ErrTransitionFault wraps any failure that aborted a transition
	ErrTransitionFault = errors.New("transition aborted")
)
