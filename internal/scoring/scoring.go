// Package scoring evaluates quiz answers and classifies calorie counts.
// Every function here is pure apart from the random source passed in.
package scoring

import (
	"math"
	"math/rand"

	"fruitfriends/internal/models"
)

const (
	// Tolerance is the calorie window inside which a guess counts as correct
	Tolerance = 20

	// LightMax and GoodMax are the inclusive upper bounds of the lower bands
	LightMax = 60
	GoodMax  = 90

	// SimilarWindow is how close two fruits must be to count as "similar"
	SimilarWindow = 15
)

// distractorOffsets are applied to the correct answer, in order of preference
var distractorOffsets = []int{20, -15, 35}

// fallbackStep spaces extra offsets used when a preferred one is unusable
const fallbackStep = 15

// maxFallbackSteps bounds the search for replacement offsets
const maxFallbackSteps = 64

// Difference returns the absolute distance between a guess and the real value
func Difference(guessed, actual int) int {
	if guessed > actual {
		return guessed - actual
	}
	return actual - guessed
}

// IsCorrect reports whether a guess lies within Tolerance of the actual value
func IsCorrect(guessed, actual int) bool {
	return Difference(guessed, actual) <= Tolerance
}

// BandFor classifies a calorie count
func BandFor(calories int) models.EnergyBand {
	switch {
	case calories <= LightMax:
		return models.EnergyLight
	case calories <= GoodMax:
		return models.EnergyGood
	default:
		return models.EnergyLots
	}
}

// Distractors returns the correct value plus three wrong answers, shuffled.
// The wrong answers are the fixed offsets +20, -15 and +35. Offsets that
// would give a non-positive or repeated option are replaced by further
// positive offsets (+50, +65, ...), so all four options are distinct.
// Near the top of the int range, where adding would overflow, the
// replacement offsets are subtracted instead. The search is bounded, so an
// input far below zero can return fewer than four options.
func Distractors(correct int, r *rand.Rand) []int {
	options := []int{correct}
	seen := map[int]bool{correct: true}

	usable := func(v int) bool {
		return v > 0 && !seen[v]
	}

	for _, offset := range distractorOffsets {
		v, ok := addInt(correct, offset)
		if !ok || !usable(v) {
			continue
		}
		options = append(options, v)
		seen[v] = true
	}

	next := distractorOffsets[len(distractorOffsets)-1] + fallbackStep
	for step := 0; step < maxFallbackSteps && len(options) < len(distractorOffsets)+1; step++ {
		v, ok := addInt(correct, next)
		if !ok {
			v, ok = addInt(correct, -next)
		}
		if ok && usable(v) {
			options = append(options, v)
			seen[v] = true
		}
		next += fallbackStep
	}

	shuffle(r, len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// HigherCalorie returns whichever fruit has strictly more calories.
// ok is false on a tie, where the question has no right answer.
func HigherCalorie(a, b models.Fruit) (higher models.Fruit, ok bool) {
	switch {
	case a.Calories > b.Calories:
		return a, true
	case b.Calories > a.Calories:
		return b, true
	default:
		return models.Fruit{}, false
	}
}

// SimilarCalories returns the fruits within SimilarWindow calories of target,
// excluding target itself, in the order given
func SimilarCalories(target models.Fruit, fruits []models.Fruit) []models.Fruit {
	out := []models.Fruit{}
	for _, f := range fruits {
		if f.ID == target.ID {
			continue
		}
		if Difference(f.Calories, target.Calories) <= SimilarWindow {
			out = append(out, f)
		}
	}
	return out
}

// addInt returns a+b, or false if the sum overflows
func addInt(a, b int) (int, bool) {
	if (b > 0 && a > math.MaxInt-b) || (b < 0 && a < math.MinInt-b) {
		return 0, false
	}
	return a + b, true
}

func shuffle(r *rand.Rand, n int, swap func(i, j int)) {
	if r == nil {
		rand.Shuffle(n, swap)
		return
	}
	r.Shuffle(n, swap)
}
