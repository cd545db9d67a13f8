// Package catalog holds the fixed list of fruits the app teaches about.
// The list is built once at package init and never mutated; every accessor
// returns copies.
package catalog

import (
	"math/rand"
	"sort"
	"strings"

	"fruitfriends/internal/models"
	"fruitfriends/internal/scoring"
)

var fruits = []models.Fruit{
	{
		ID:          "apple",
		Name:        "Apple",
		Emoji:       "🍎",
		Color:       "bg-red-100 border-red-300",
		Calories:    95,
		Description: "Crunchy and sweet fruit that keeps you healthy!",
		Nutrients:   models.Nutrients{Vitamin: "Vitamin C", Fiber: 4.4, Sugar: 19},
		FunFact:     "An apple a day keeps the doctor away!",
	},
	{
		ID:          "banana",
		Name:        "Banana",
		Emoji:       "🍌",
		Color:       "bg-yellow-100 border-yellow-300",
		Calories:    105,
		Description: "Sweet and creamy fruit that gives you energy!",
		Nutrients:   models.Nutrients{Vitamin: "Vitamin B6", Fiber: 3.1, Sugar: 14},
		FunFact:     "Bananas are berries, but strawberries aren't!",
	},
	{
		ID:          "orange",
		Name:        "Orange",
		Emoji:       "🍊",
		Color:       "bg-orange-100 border-orange-300",
		Calories:    62,
		Description: "Juicy citrus fruit packed with vitamins!",
		Nutrients:   models.Nutrients{Vitamin: "Vitamin C", Fiber: 3.1, Sugar: 12},
		FunFact:     "Oranges can help you stay healthy and strong!",
	},
	{
		ID:          "grape",
		Name:        "Grapes",
		Emoji:       "🍇",
		Color:       "bg-purple-100 border-purple-300",
		Calories:    62,
		Description: "Small, sweet fruits that come in bunches!",
		Nutrients:   models.Nutrients{Vitamin: "Vitamin K", Fiber: 0.9, Sugar: 16},
		FunFact:     "Grapes come in over 8,000 different varieties!",
	},
	{
		ID:          "strawberry",
		Name:        "Strawberry",
		Emoji:       "🍓",
		Color:       "bg-red-100 border-red-300",
		Calories:    49,
		Description: "Sweet, red fruit with tiny seeds on the outside!",
		Nutrients:   models.Nutrients{Vitamin: "Vitamin C", Fiber: 3, Sugar: 7},
		FunFact:     "Strawberries are the only fruit with seeds on the outside!",
	},
	{
		ID:          "pineapple",
		Name:        "Pineapple",
		Emoji:       "🍍",
		Color:       "bg-yellow-100 border-yellow-300",
		Calories:    82,
		Description: "Tropical fruit with a spiky outside and sweet inside!",
		Nutrients:   models.Nutrients{Vitamin: "Vitamin C", Fiber: 2.3, Sugar: 16},
		FunFact:     "Pineapples take about 2 years to grow!",
	},
	{
		ID:          "watermelon",
		Name:        "Watermelon",
		Emoji:       "🍉",
		Color:       "bg-green-100 border-green-300",
		Calories:    46,
		Description: "Juicy fruit that's mostly water - perfect for hot days!",
		Nutrients:   models.Nutrients{Vitamin: "Vitamin A", Fiber: 0.6, Sugar: 9},
		FunFact:     "Watermelons are 92% water!",
	},
	{
		ID:          "peach",
		Name:        "Peach",
		Emoji:       "🍑",
		Color:       "bg-orange-100 border-orange-300",
		Calories:    58,
		Description: "Soft, fuzzy fruit with a sweet taste!",
		Nutrients:   models.Nutrients{Vitamin: "Vitamin A", Fiber: 2.3, Sugar: 13},
		FunFact:     "Peaches are related to roses!",
	},
}

// byID indexes fruits for lookups
var byID = func() map[string]int {
	index := make(map[string]int, len(fruits))
	for i, fruit := range fruits {
		if _, dup := index[fruit.ID]; dup {
			panic("catalog: duplicate fruit id " + fruit.ID)
		}
		if fruit.Calories <= 0 {
			panic("catalog: non-positive calories for " + fruit.ID)
		}
		index[fruit.ID] = i
	}
	return index
}()

// All returns every fruit in catalog order
func All() []models.Fruit {
	out := make([]models.Fruit, len(fruits))
	copy(out, fruits)
	return out
}

// Len returns the number of fruits in the catalog
func Len() int {
	return len(fruits)
}

// GetByID looks up a fruit. The boolean is false when the id is unknown.
func GetByID(id string) (models.Fruit, bool) {
	i, ok := byID[id]
	if !ok {
		return models.Fruit{}, false
	}
	return fruits[i], true
}

// Random picks a fruit uniformly at random. A nil r uses the global source.
func Random(r *rand.Rand) models.Fruit {
	return fruits[intn(r, len(fruits))]
}

// Shuffled returns the whole catalog in random order
func Shuffled(r *rand.Rand) []models.Fruit {
	out := All()
	shuffle := rand.Shuffle
	if r != nil {
		shuffle = r.Shuffle
	}
	shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Sample returns n distinct fruits in random order. n is capped at the
// catalog size.
func Sample(r *rand.Rand, n int) []models.Fruit {
	if n <= 0 {
		return []models.Fruit{}
	}
	out := Shuffled(r)
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// SortedByCalories returns the catalog ordered from fewest to most calories.
// Fruits with equal calories keep catalog order.
func SortedByCalories() []models.Fruit {
	out := All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Calories < out[j].Calories
	})
	return out
}

// Lowest returns the fruit with the fewest calories
func Lowest() models.Fruit {
	return SortedByCalories()[0]
}

// Highest returns the fruit with the most calories
func Highest() models.Fruit {
	sorted := SortedByCalories()
	return sorted[len(sorted)-1]
}

// ByBand returns the fruits of one energy band, sorted by calories
func ByBand(band models.EnergyBand) []models.Fruit {
	out := []models.Fruit{}
	for _, fruit := range SortedByCalories() {
		if scoring.BandFor(fruit.Calories) == band {
			out = append(out, fruit)
		}
	}
	return out
}

// Search returns the fruits whose name or description contains term,
// ignoring case. An empty term matches everything.
func Search(term string) []models.Fruit {
	term = strings.ToLower(strings.TrimSpace(term))
	out := []models.Fruit{}
	for _, fruit := range fruits {
		if strings.Contains(strings.ToLower(fruit.Name), term) ||
			strings.Contains(strings.ToLower(fruit.Description), term) {
			out = append(out, fruit)
		}
	}
	return out
}

func intn(r *rand.Rand, n int) int {
	if r == nil {
		return rand.Intn(n)
	}
	return r.Intn(n)
}
