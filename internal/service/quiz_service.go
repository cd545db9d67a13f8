package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"

	"fruitfriends/internal/catalog"
	"fruitfriends/internal/models"
	"fruitfriends/internal/scoring"
	"fruitfriends/internal/validation"

	"go.uber.org/zap"
)

var ErrFruitNotFound = errors.New("fruit not found")

// QuizSubmission is a calorie guess as entered on the quiz form
type QuizSubmission struct {
	ChildName       string
	FruitID         string
	GuessedCalories int
}

// QuizResult is everything the result screen shows after a guess.
// Progress is nil for anonymous guesses.
type QuizResult struct {
	Fruit      models.Fruit
	Attempt    models.QuizAttempt
	Difference int
	IsCorrect  bool
	Progress   *models.ProgressRecord
	Accuracy   int
}

// QuizService runs the calorie guessing quiz
type QuizService struct {
	progress *ProgressService
	rng      *rand.Rand
	log      *zap.Logger
}

// NewQuizService creates a new quiz service. A nil rng uses the global source.
func NewQuizService(progress *ProgressService, rng *rand.Rand, log *zap.Logger) *QuizService {
	return &QuizService{
		progress: progress,
		rng:      rng,
		log:      log,
	}
}

// NewQuestion picks the fruit for a new round
func (s *QuizService) NewQuestion() models.Fruit {
	return catalog.Random(s.rng)
}

// Submit validates a guess and scores it against the catalog. The attempt is
// recorded in the child's progress only when a child name is given.
func (s *QuizService) Submit(ctx context.Context, sub QuizSubmission) (*QuizResult, error) {
	sub.ChildName = strings.TrimSpace(sub.ChildName)
	if sub.ChildName != "" {
		if err := validation.ValidateChildName(sub.ChildName); err != nil {
			return nil, err
		}
	}
	if err := validation.ValidateFruitSelection("selectedFruit", sub.FruitID); err != nil {
		return nil, err
	}
	if err := validation.ValidateGuess(sub.GuessedCalories); err != nil {
		return nil, err
	}

	fruit, ok := catalog.GetByID(sub.FruitID)
	if !ok {
		return nil, ErrFruitNotFound
	}

	attempt := models.QuizAttempt{
		ChildName:       sub.ChildName,
		FruitID:         fruit.ID,
		GuessedCalories: sub.GuessedCalories,
		ActualCalories:  fruit.Calories,
	}
	isCorrect := scoring.IsCorrect(attempt.GuessedCalories, attempt.ActualCalories)

	result := &QuizResult{
		Fruit:      fruit,
		Attempt:    attempt,
		Difference: scoring.Difference(attempt.GuessedCalories, attempt.ActualCalories),
		IsCorrect:  isCorrect,
	}
	if attempt.ChildName != "" {
		result.Progress = s.progress.UpdateProgress(ctx, attempt.ChildName, isCorrect, attempt.FruitID)
		result.Accuracy = Accuracy(result.Progress)
	}

	s.log.Debug("Quiz answer scored",
		zap.String("child_name", attempt.ChildName),
		zap.String("fruit_id", attempt.FruitID),
		zap.Int("guess", attempt.GuessedCalories),
		zap.Bool("correct", isCorrect),
	)

	return result, nil
}
