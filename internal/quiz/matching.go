package quiz

import "math/rand/v2"

// Side identifies one column of the matching board.
type Side int

const (
	SideAmharic Side = iota
	SideEnglish
)

func (s Side) String() string {
	if s == SideAmharic {
		return "amharic"
	}
	return "english"
}

// BoardState is the matching board's coarse state. Pair evaluation
// happens atomically inside Select, so the externally visible states
// are idle (no pending selection), one-selected, and the terminal
// complete.
type BoardState int

const (
	BoardIdle BoardState = iota
	BoardOneSelected
	BoardComplete
)

// PairOutcome is the result of a Select call.
type PairOutcome struct {
	// Evaluated is true when this selection closed a pair and the pair
	// was checked against the vocabulary.
	Evaluated bool

	// Matched is true when the evaluated pair was a correct match.
	Matched bool

	// Completed fires exactly once, on the selection that matched the
	// final pair. Re-checking completion can never fire it again.
	Completed bool
}

// Board is the matching mini-game state machine. One Board lives for
// one matching question activation; a new activation builds a new
// Board with freshly shuffled columns.
type Board struct {
	pairs []WordPair

	// Presentation order of each column, shuffled independently.
	// Shuffling never touches pairs, which stays the source of truth
	// for correctness checks.
	amharic []string
	english []string

	pendingAmharic string
	pendingEnglish string

	matchedAmharic map[string]bool
	matchedEnglish map[string]bool

	signaled bool
}

// NewBoard creates a board for the given vocabulary with both column
// orders drawn from rng.
func NewBoard(pairs []WordPair, rng *rand.Rand) (*Board, error) {
	if len(pairs) == 0 {
		return nil, &ValidationError{Reason: "matching board needs pairs"}
	}

	amharic := make([]string, len(pairs))
	english := make([]string, len(pairs))
	for i, p := range pairs {
		amharic[i] = p.Amharic
		english[i] = p.English
	}

	return &Board{
		pairs:          pairs,
		amharic:        shuffledStrings(amharic, rng),
		english:        shuffledStrings(english, rng),
		matchedAmharic: make(map[string]bool),
		matchedEnglish: make(map[string]bool),
	}, nil
}

// Amharic returns the Amharic column in presentation order.
func (b *Board) Amharic() []string { return b.amharic }

// English returns the English column in presentation order.
func (b *Board) English() []string { return b.english }

// PairCount returns the number of vocabulary pairs on the board.
func (b *Board) PairCount() int { return len(b.pairs) }

// MatchedCount returns the number of matched tokens (always even,
// bounded by 2 × PairCount, and it only ever grows).
func (b *Board) MatchedCount() int {
	return len(b.matchedAmharic) + len(b.matchedEnglish)
}

// Matched reports whether the given token is already resolved.
func (b *Board) Matched(side Side, token string) bool {
	if side == SideAmharic {
		return b.matchedAmharic[token]
	}
	return b.matchedEnglish[token]
}

// Pending returns the pending selection for a side ("" when empty).
func (b *Board) Pending(side Side) string {
	if side == SideAmharic {
		return b.pendingAmharic
	}
	return b.pendingEnglish
}

// Completed reports whether every pair has been matched.
func (b *Board) Completed() bool {
	return b.MatchedCount() == 2*len(b.pairs)
}

// State returns the board's current coarse state.
func (b *Board) State() BoardState {
	if b.Completed() {
		return BoardComplete
	}
	if b.pendingAmharic != "" || b.pendingEnglish != "" {
		return BoardOneSelected
	}
	return BoardIdle
}

// Select records a token selection. Selecting with the opposite side
// already pending evaluates the pair: a correct pair joins the matched
// set irreversibly, an incorrect pair has no penalty; either way both
// pending selections clear. Selecting the same side again replaces the
// pending token. Matched tokens are not selectable, and a completed
// board accepts no further selections — both are state violations.
func (b *Board) Select(side Side, token string) (PairOutcome, error) {
	if b.Completed() {
		return PairOutcome{}, &StateViolationError{Op: "board select", Reason: "board already complete"}
	}
	if !b.onBoard(side, token) {
		return PairOutcome{}, &ValidationError{Reason: "token not on board: " + token}
	}
	if b.Matched(side, token) {
		return PairOutcome{}, &StateViolationError{Op: "board select", Reason: "token already matched: " + token}
	}

	if side == SideAmharic {
		b.pendingAmharic = token
	} else {
		b.pendingEnglish = token
	}

	if b.pendingAmharic == "" || b.pendingEnglish == "" {
		return PairOutcome{}, nil
	}

	// Both sides chosen: evaluate, then clear the selection whatever
	// the outcome.
	out := PairOutcome{Evaluated: true}
	if b.isPair(b.pendingAmharic, b.pendingEnglish) {
		out.Matched = true
		b.matchedAmharic[b.pendingAmharic] = true
		b.matchedEnglish[b.pendingEnglish] = true
	}
	b.pendingAmharic = ""
	b.pendingEnglish = ""

	if b.Completed() && !b.signaled {
		b.signaled = true
		out.Completed = true
	}

	return out, nil
}

func (b *Board) isPair(amharic, english string) bool {
	for _, p := range b.pairs {
		if p.Amharic == amharic && p.English == english {
			return true
		}
	}
	return false
}

func (b *Board) onBoard(side Side, token string) bool {
	column := b.amharic
	if side == SideEnglish {
		column = b.english
	}
	for _, t := range column {
		if t == token {
			return true
		}
	}
	return false
}
