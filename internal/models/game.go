package models

// Difficulty selects how many question types a learning game contains
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QuestionType identifies the kind of learning game question
type QuestionType string

const (
	QuestionGuess    QuestionType = "guess"
	QuestionCompare  QuestionType = "compare"
	QuestionCategory QuestionType = "category"
	QuestionMatch    QuestionType = "match"
)

// GameQuestion is one multiple-choice question of a learning game.
// Options always contain CorrectAnswer exactly once.
type GameQuestion struct {
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	Fruits        []Fruit      `json:"fruits"`
	CorrectAnswer string       `json:"correctAnswer"`
	Options       []string     `json:"options"`
	Explanation   string       `json:"explanation"`
}
