package populate

import (
	"math/rand/v2"
	"time"
)

// Choice names a category decision the populator delegates.
type Choice string

const (
	ChoosePaperKind      Choice = "paper_kind"
	ChooseConferenceKind Choice = "conference_kind"
	ChooseHandler        Choice = "handler"
)

// CategoryChooser picks one of n options for a choice. It must return a
// value in [0, n).
type CategoryChooser interface {
	Choose(c Choice, n int) int
}

// ChooserFunc adapts a function to CategoryChooser.
type ChooserFunc func(c Choice, n int) int

// Choose calls f.
func (f ChooserFunc) Choose(c Choice, n int) int { return f(c, n) }

// FirstChooser always picks the first option.
type FirstChooser struct{}

// Choose returns 0.
func (FirstChooser) Choose(Choice, int) int { return 0 }

// RandomChooser picks uniformly at random.
type RandomChooser struct {
	rng *rand.Rand
}

// NewRandomChooser returns a chooser seeded with seed; zero seeds from the clock.
func NewRandomChooser(seed uint64) *RandomChooser {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomChooser{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Choose returns a uniform index in [0, n).
func (r *RandomChooser) Choose(_ Choice, n int) int {
	return r.rng.IntN(n)
}
