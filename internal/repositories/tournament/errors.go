package tournament

// TournamentError is returned for lookups that found no record
type TournamentError string

// Error implements the error interface
func (e TournamentError) Error() string {
	return string(e)
}

const (
	ErrMatchNotFound         TournamentError = "match room not found"
	ErrQualifierRoomNotFound TournamentError = "qualifier room not found"
	ErrRefereeNotFound       TournamentError = "referee not found"
	ErrRoomNotFound          TournamentError = "no match or qualifier room with this id"
)
