package quiz

import "math/rand/v2"

// Sequence produces the presentation order for a quiz's questions:
// all wordIntroduction questions first (relative order preserved), then
// all wordLearning questions (relative order preserved), then every
// remaining question uniformly shuffled with rng. Vocabulary is always
// introduced and drilled before it is quizzed.
//
// The input slice is never reordered in place; rng is injected so
// sequencing is reproducible under a fixed seed.
func Sequence(questions []Question, rng *rand.Rand) []Question {
	intro := make([]Question, 0, len(questions))
	learning := make([]Question, 0, len(questions))
	rest := make([]Question, 0, len(questions))

	for _, q := range questions {
		switch q.Type {
		case TypeWordIntroduction:
			intro = append(intro, q)
		case TypeWordLearning:
			learning = append(learning, q)
		default:
			rest = append(rest, q)
		}
	}

	rng.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})

	out := make([]Question, 0, len(questions))
	out = append(out, intro...)
	out = append(out, learning...)
	out = append(out, rest...)
	return out
}

// shuffledStrings returns a uniformly shuffled copy of in.
func shuffledStrings(in []string, rng *rand.Rand) []string {
	out := make([]string, len(in))
	copy(out, in)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
