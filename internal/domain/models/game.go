package models

// Session is one player's game state for the current day.
// Once Finished is true the session is frozen until a reset or restart.
type Session struct {
	Answer   string `json:"answer"`
	Guesses  int    `json:"guesses"`
	Finished bool   `json:"finished"`
	Won      bool   `json:"won"`
}

// InProgress reports whether the session accepts further guesses.
func (s *Session) InProgress() bool {
	return !s.Finished
}

// StartResult is the outcome of starting (or restarting) a game.
type StartResult struct {
	Guesses    int `json:"guesses"`
	MaxGuesses int `json:"max_guesses"`
}

// GuessResult is the outcome of a scored guess.
type GuessResult struct {
	Win         bool   `json:"win"`
	Finished    bool   `json:"finished"`
	Guesses     int    `json:"guesses"`
	GuessesLeft int    `json:"guesses_left"`
	Hints       *Hints `json:"hints,omitempty"`
}

// EndResult is the read-only game summary.
type EndResult struct {
	Win         bool `json:"win"`
	Guesses     int  `json:"guesses"`
	GuessesLeft int  `json:"guesses_left"`
}
