package models

// Fruit is a single catalog entry. Calories is the ground truth for all scoring.
type Fruit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Emoji       string    `json:"emoji"`
	Color       string    `json:"color"`
	Calories    int       `json:"calories"`
	Description string    `json:"description"`
	Nutrients   Nutrients `json:"nutrients"`
	FunFact     string    `json:"funFact"`
}

// Nutrients holds the headline nutrition facts shown on a fruit card
type Nutrients struct {
	Vitamin string  `json:"vitamin"`
	Fiber   float64 `json:"fiber"`
	Sugar   float64 `json:"sugar"`
}

// EnergyBand is the child-friendly calorie category of a fruit
type EnergyBand int

const (
	EnergyLight EnergyBand = iota
	EnergyGood
	EnergyLots
)

// EnergyBands lists every band in ascending order
var EnergyBands = []EnergyBand{EnergyLight, EnergyGood, EnergyLots}

// Label returns the display text used by every surface of the app
func (b EnergyBand) Label() string {
	switch b {
	case EnergyLight:
		return "Light Energy"
	case EnergyGood:
		return "Good Energy"
	case EnergyLots:
		return "Lots of Energy"
	default:
		return "Unknown Energy"
	}
}

// Level returns the coarse level name (low, medium, high)
func (b EnergyBand) Level() string {
	switch b {
	case EnergyLight:
		return "low"
	case EnergyGood:
		return "medium"
	case EnergyLots:
		return "high"
	default:
		return "unknown"
	}
}

func (b EnergyBand) String() string {
	return b.Label()
}
