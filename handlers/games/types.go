package games

// GuessRequest is the body of POST /game/guess.
type GuessRequest struct {
	SongGuess string `json:"songGuess" binding:"required"`
}
