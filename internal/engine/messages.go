package engine

// Lines announced by the engine. Lobby commands are built inline.
const (
	msgJoinLobby           = "Lobby is up. Join it from any IRC client with: /join %s"
	msgEngageElimination   = "Auto referee engaged for match %s (%s vs %s, best of %d). Type !panic at any time if you need a referee."
	msgEngageQualifiers    = "Auto referee engaged for qualifiers lobby %s. Type !panic at any time if you need a referee."
	msgResuming            = "Auto referee resuming."
	msgDraftOrderMissing   = "Set the draft order first with >firstpick red|blue and >firstban red|blue."
	msgAlreadyEngaged      = "Auto referee is already running."
	msgAlreadyFinished     = "This match is already finished."
	msgAlreadyStopped      = "Auto referee is already stopped."
	msgStopped             = "Auto referee stopped. Use >start to resume."
	msgNotEnoughArgs       = "Missing argument for >%s."
	msgInvalidTeam         = "Unknown team %q, use red or blue."
	msgFirstPickSet        = "First pick: %s."
	msgFirstBanSet         = "First ban: %s."
	msgSetMapFail          = "Maps can only be forced while the auto referee is stopped."
	msgUnknownSlot         = "There is no slot %s in this pool."
	msgTimeoutUnavailable  = "Timeouts can only be called while waiting for a ban, a pick or the map start."
	msgBanCall             = "%s, your turn to ban. Type the slot in chat (e.g. NM1)."
	msgPickCall            = "%s, your turn to pick. Type the slot in chat (e.g. NM1)."
	msgBanned              = "%s banned %s."
	msgPicked              = "%s picked %s."
	msgDraftStatus         = "Bans: %s | Picks: %s"
	msgAvailableMaps       = "Available maps: %s"
	msgTimeoutsLeft        = "Timeouts left | %s: %s | %s: %s"
	msgNone                = "none"
	msgMapWon              = "%s wins the map (%d - %d)."
	msgMapTie              = "The map ended in a tie (%d - %d). It will be replayed."
	msgScoreLine           = "%s %d - %d %s | Best of %d"
	msgMatchWon            = "%s wins the match. GG!"
	msgSecondBanRound      = "Second ban round."
	msgTiebreaker          = "Match point on both sides, the tiebreaker %s is up."
	msgHold                = "%s%s asked for a referee. Auto referee is on hold until a referee types !panic_over."
	msgHoldOver            = "Back to auto. The game starts soon."
	msgTeamTimeout         = "%s called their timeout."
	msgRefereeTimeout      = "The referee called a timeout."
	msgTimeoutOver         = "Timeout over."
	msgQualifierProgress   = "Played %d of %d | Remaining: %s"
	msgQualifiersOver      = "That was the last map. Thanks for playing!"
	msgQualifierMapPlaying = "Up next: %s."
)
