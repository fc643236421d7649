package quiz

import (
	"errors"
	"testing"
)

func testPairs() []WordPair {
	return []WordPair{
		{Amharic: "ሰላም", English: "hello"},
		{Amharic: "ውሃ", English: "water"},
		{Amharic: "ዳቦ", English: "bread"},
	}
}

func TestBoard_ShuffleKeepsPairingIntact(t *testing.T) {
	pairs := testPairs()
	b, err := NewBoard(pairs, testRNG(5))
	if err != nil {
		t.Fatal(err)
	}

	if len(b.Amharic()) != 3 || len(b.English()) != 3 {
		t.Fatalf("columns = %v / %v", b.Amharic(), b.English())
	}

	// Whatever the presentation order, the authored associations decide
	// correctness.
	out, err := b.Select(SideAmharic, "ውሃ")
	if err != nil || out.Evaluated {
		t.Fatalf("first selection: out=%+v err=%v", out, err)
	}
	if b.State() != BoardOneSelected {
		t.Errorf("State = %v, want one-selected", b.State())
	}

	out, err = b.Select(SideEnglish, "water")
	if err != nil {
		t.Fatal(err)
	}
	if !out.Evaluated || !out.Matched {
		t.Errorf("correct pair outcome = %+v", out)
	}
	if b.State() != BoardIdle {
		t.Errorf("State after evaluation = %v, want idle", b.State())
	}
}

func TestBoard_IncorrectPairHasNoPenalty(t *testing.T) {
	b, _ := NewBoard(testPairs(), testRNG(5))

	b.Select(SideAmharic, "ሰላም")
	out, err := b.Select(SideEnglish, "water")
	if err != nil {
		t.Fatal(err)
	}
	if !out.Evaluated || out.Matched {
		t.Fatalf("wrong pair outcome = %+v", out)
	}
	if b.MatchedCount() != 0 {
		t.Errorf("MatchedCount = %d after wrong pair", b.MatchedCount())
	}
	// Both pending selections cleared; the learner can try again freely.
	if b.Pending(SideAmharic) != "" || b.Pending(SideEnglish) != "" {
		t.Error("pending selections not cleared")
	}
	if b.State() != BoardIdle {
		t.Errorf("State = %v, want idle", b.State())
	}
}

func TestBoard_SameSideReselectReplacesPending(t *testing.T) {
	b, _ := NewBoard(testPairs(), testRNG(5))

	b.Select(SideAmharic, "ሰላም")
	b.Select(SideAmharic, "ውሃ")
	if got := b.Pending(SideAmharic); got != "ውሃ" {
		t.Fatalf("pending = %q, want replacement", got)
	}

	out, err := b.Select(SideEnglish, "water")
	if err != nil {
		t.Fatal(err)
	}
	if !out.Matched {
		t.Errorf("outcome = %+v, want match against replaced selection", out)
	}
}

func TestBoard_MatchedTokensNotSelectable(t *testing.T) {
	b, _ := NewBoard(testPairs(), testRNG(5))

	b.Select(SideAmharic, "ሰላም")
	b.Select(SideEnglish, "hello")

	_, err := b.Select(SideAmharic, "ሰላም")
	var sv *StateViolationError
	if !errors.As(err, &sv) {
		t.Fatalf("selecting matched token: err = %v, want *StateViolationError", err)
	}
}

func TestBoard_UnknownTokenRejected(t *testing.T) {
	b, _ := NewBoard(testPairs(), testRNG(5))

	_, err := b.Select(SideEnglish, "goodbye")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}

func TestBoard_CompletionFiresExactlyOnce(t *testing.T) {
	pairs := testPairs()
	b, _ := NewBoard(pairs, testRNG(5))

	completions := 0
	// Interleave wrong attempts with the three correct matches; only
	// the selection that closes the final pair may report completion.
	b.Select(SideAmharic, pairs[0].Amharic)
	b.Select(SideEnglish, pairs[1].English) // wrong

	for _, p := range pairs {
		b.Select(SideAmharic, p.Amharic)
		out, err := b.Select(SideEnglish, p.English)
		if err != nil {
			t.Fatal(err)
		}
		if out.Completed {
			completions++
		}
	}

	if completions != 1 {
		t.Fatalf("completion fired %d times, want exactly 1", completions)
	}
	if !b.Completed() || b.State() != BoardComplete {
		t.Error("board not in terminal complete state")
	}
	if b.MatchedCount() != 2*len(pairs) {
		t.Errorf("MatchedCount = %d, want %d", b.MatchedCount(), 2*len(pairs))
	}

	// A completed board accepts nothing further.
	_, err := b.Select(SideAmharic, pairs[0].Amharic)
	var sv *StateViolationError
	if !errors.As(err, &sv) {
		t.Fatalf("select after complete: err = %v, want *StateViolationError", err)
	}
}
