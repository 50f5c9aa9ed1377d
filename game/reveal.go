package game

import "shredle/models"

// MaxGuesses is the number of guesses a player gets before the round ends.
const MaxGuesses = 4

// openingClipMs is the clip exposure before any guess has been made.
const openingClipMs = 3000

// RevealState is the disclosure contract returned to the client at a given
// attempt count. Title, artist and hint stay empty until the round is over
// (hint unlocks one attempt earlier); the clip start offset and track
// reference are always carried so the client can position playback.
type RevealState struct {
	SoloID            int    `json:"soloId"`
	SpotifyID         string `json:"spotifyId"`
	ClipStartMs       int    `json:"clipStartMs"`
	ClipDurationMs    int    `json:"clipDurationMs"`
	Title             string `json:"title,omitempty"`
	Artist            string `json:"artist,omitempty"`
	Guitarist         string `json:"guitarist,omitempty"`
	Hint              string `json:"hint,omitempty"`
	RevealGuitarist   bool   `json:"revealGuitarist"`
	RevealHint        bool   `json:"revealHint"`
	IsCorrect         bool   `json:"isCorrect"`
	IsComplete        bool   `json:"isComplete"`
	AttemptCount      int    `json:"attemptCount"`
	AttemptsRemaining int    `json:"attemptsRemaining"`
}

// ComputeReveal maps (solo, attemptCount, isCorrect) to the state disclosed
// to the client. It is a pure function: identical inputs always produce
// identical output. attemptCount is the number of guesses made so far
// (0 = initial view); counts at or above MaxGuesses are clamped to terminal
// behavior rather than indexed into the reveal table.
func ComputeReveal(solo models.Solo, attemptCount int, isCorrect bool) RevealState {
	if attemptCount < 0 {
		attemptCount = 0
	}

	span := solo.SoloEndMs - solo.SoloStartMs

	state := RevealState{
		SoloID:            solo.ID,
		SpotifyID:         solo.SpotifyID,
		ClipStartMs:       solo.SoloStartMs,
		IsCorrect:         isCorrect,
		AttemptCount:      attemptCount,
		AttemptsRemaining: MaxGuesses - attemptCount,
	}
	if state.AttemptsRemaining < 0 {
		state.AttemptsRemaining = 0
	}

	if isCorrect || attemptCount >= MaxGuesses {
		state.IsComplete = true
		state.ClipDurationMs = span
		state.Title = solo.Title
		state.Artist = solo.Artist
		state.Guitarist = solo.Guitarist
		state.Hint = solo.Hint
		state.RevealGuitarist = true
		state.RevealHint = true
		return state
	}

	switch attemptCount {
	case 0:
		state.ClipDurationMs = openingClipMs
		if span < openingClipMs {
			state.ClipDurationMs = span
		}
	case 1:
		// integer floor, not rounding
		state.ClipDurationMs = span * 25 / 100
	case 2:
		state.ClipDurationMs = span * 66 / 100
		state.Guitarist = solo.Guitarist
		state.RevealGuitarist = true
	default: // 3, the last guess
		state.ClipDurationMs = span
		state.Guitarist = solo.Guitarist
		state.Hint = solo.Hint
		state.RevealGuitarist = true
		state.RevealHint = true
	}

	return state
}
