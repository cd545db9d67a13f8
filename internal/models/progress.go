package models

import "time"

// ProgressRecord is the persisted per-child aggregate of quiz attempts.
// CompletedQuizzes and CorrectAnswers are always incremented together; both
// are kept because stored records carry both fields.
type ProgressRecord struct {
	ChildName        string    `json:"childName"`
	CompletedQuizzes int       `json:"completedQuizzes"`
	CorrectAnswers   int       `json:"correctAnswers"`
	TotalAttempts    int       `json:"totalAttempts"`
	FavoriteFruits   []string  `json:"favoriteFruits"`
	LastPlayed       time.Time `json:"lastPlayed"`
}

// HasFruit reports whether fruitID was already guessed by this child
func (p *ProgressRecord) HasFruit(fruitID string) bool {
	for _, id := range p.FavoriteFruits {
		if id == fruitID {
			return true
		}
	}
	return false
}

// QuizAttempt is a single submitted guess. It is not persisted.
type QuizAttempt struct {
	ChildName       string
	FruitID         string
	GuessedCalories int
	ActualCalories  int
}
