package game

import (
	"context"
	"log"
	"strings"

	"shredle/metrics"
)

// GuessOracle judges whether a free-text guess semantically matches a song
// title. Implemented by the OpenAI oracle client.
type GuessOracle interface {
	Configured() bool
	JudgeGuess(ctx context.Context, guess, title, artist string) (bool, error)
}

// Judge decides whether a guess matches a solo's title. With a configured
// oracle it delegates the fuzzy matching; without one, or when the oracle
// fails, it degrades to deterministic local comparison. It never returns an
// error: a false "incorrect" costs the player one attempt, an error would
// cost them the round.
type Judge struct {
	oracle GuessOracle
}

func NewJudge(oracle GuessOracle) *Judge {
	return &Judge{oracle: oracle}
}

// Judge returns whether guess matches title. A blank guess is a caller bug
// (handlers reject it with 400 first) but is answered with false, not a
// panic.
func (j *Judge) Judge(ctx context.Context, guess, title, artist string) bool {
	if strings.TrimSpace(guess) == "" {
		return false
	}

	if j.oracle != nil && j.oracle.Configured() {
		correct, err := j.oracle.JudgeGuess(ctx, guess, title, artist)
		if err == nil {
			return correct
		}
		log.Printf("Guess validation via oracle failed, falling back to exact match: %v", err)
		metrics.OracleFallbacks.WithLabelValues("judge").Inc()
		return strings.EqualFold(strings.TrimSpace(guess), strings.TrimSpace(title))
	}

	return matchesLocally(guess, title)
}

// titleAliases maps widely-used shorthand to the normalized title it stands
// for. This is a narrow whitelist, not general fuzzy matching.
var titleAliases = map[string]string{
	"stairway":   "stairwaytoheaven",
	"bohrap":     "bohemianrhapsody",
	"sweetchild": "sweetchildomine",
}

func matchesLocally(guess, title string) bool {
	g := normalizeTitle(guess)
	t := normalizeTitle(title)
	if g == t {
		return true
	}
	return titleAliases[g] == t
}

// normalizeTitle lowercases and strips whitespace, apostrophes and hyphens
// so that "stairway-to-heaven" matches "Stairway To Heaven".
func normalizeTitle(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\'', '’', '-':
			return -1
		}
		return r
	}, s)
}
