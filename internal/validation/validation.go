package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"fruitfriends/internal/models"
)

const (
	MinNameLength   = 2
	MaxNameLength   = 50
	MinGuess        = 1
	MaxGuess        = 1000
	MinRating       = 1
	MaxRating       = 5
	MaxCommentsSize = 200
)

var childNameRegex = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateChildName checks a child's display name: 2 to 50 characters,
// letters and spaces only
func ValidateChildName(name string) error {
	if len(name) < MinNameLength {
		return ValidationError{Field: "childName", Message: "name must be at least 2 characters long"}
	}
	if len(name) > MaxNameLength {
		return ValidationError{Field: "childName", Message: "name must be less than 50 characters"}
	}
	if !childNameRegex.MatchString(name) {
		return ValidationError{Field: "childName", Message: "name can only contain letters and spaces"}
	}
	return nil
}

// ValidateFruitSelection checks that a fruit was picked
func ValidateFruitSelection(field, fruitID string) error {
	if strings.TrimSpace(fruitID) == "" {
		return ValidationError{Field: field, Message: "please select a fruit"}
	}
	return nil
}

// ValidateGuess checks a calorie guess
func ValidateGuess(calories int) error {
	if calories < MinGuess {
		return ValidationError{Field: "guessedCalories", Message: "calories must be at least 1"}
	}
	if calories > MaxGuess {
		return ValidationError{Field: "guessedCalories", Message: "calories must be at most 1000"}
	}
	return nil
}

// ValidateDifficulty checks a difficulty level
func ValidateDifficulty(d models.Difficulty) error {
	switch d {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		return nil
	}
	return ValidationError{Field: "difficultyLevel", Message: "please select a difficulty level"}
}

// ValidateRating checks an enjoyment rating
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ValidationError{Field: "enjoymentRating", Message: "please rate from 1 to 5"}
	}
	return nil
}

// ValidateComments checks optional free-text comments. The limit is in
// characters, not bytes.
func ValidateComments(comments string) error {
	if utf8.RuneCountInString(comments) > MaxCommentsSize {
		return ValidationError{Field: "comments", Message: "comments must be less than 200 characters"}
	}
	return nil
}

// ValidateFeedback checks a whole feedback form and returns the first problem
func ValidateFeedback(f models.Feedback) error {
	if err := ValidateChildName(f.ChildName); err != nil {
		return err
	}
	if err := ValidateFruitSelection("favoriteFruit", f.FavoriteFruit); err != nil {
		return err
	}
	if err := ValidateDifficulty(f.Difficulty); err != nil {
		return err
	}
	if err := ValidateRating(f.EnjoymentRating); err != nil {
		return err
	}
	return ValidateComments(f.Comments)
}
