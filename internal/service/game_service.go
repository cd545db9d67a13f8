package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"fruitfriends/internal/catalog"
	"fruitfriends/internal/models"
	"fruitfriends/internal/scoring"
	"fruitfriends/internal/validation"

	"go.uber.org/zap"
)

var ErrGameComplete = errors.New("game is already complete")

// GameService builds calorie learning games
type GameService struct {
	rng *rand.Rand
	log *zap.Logger
}

// NewGameService creates a new game service. A nil rng uses the global source.
func NewGameService(rng *rand.Rand, log *zap.Logger) *GameService {
	return &GameService{rng: rng, log: log}
}

// NewGame starts a learning game at the given difficulty
func (s *GameService) NewGame(difficulty models.Difficulty) (*GameSession, error) {
	if difficulty == "" {
		difficulty = models.DifficultyEasy
	}
	if err := validation.ValidateDifficulty(difficulty); err != nil {
		return nil, err
	}

	questions := s.GenerateQuestions(difficulty)
	s.log.Debug("Learning game started",
		zap.String("difficulty", string(difficulty)),
		zap.Int("questions", len(questions)),
	)

	return &GameSession{
		Difficulty: difficulty,
		Questions:  questions,
	}, nil
}

// GenerateQuestions builds one guess, one compare and one category question,
// plus a match question above easy when a similar fruit exists
func (s *GameService) GenerateQuestions(difficulty models.Difficulty) []models.GameQuestion {
	pool := catalog.Shuffled(s.rng)
	questions := make([]models.GameQuestion, 0, 4)

	guessFruit := pool[0]
	pool = pool[1:]
	questions = append(questions, s.guessQuestion(guessFruit))

	// Equal calories have no right answer, so the pair is redrawn
	first := pool[0]
	second := -1
	for i := 1; i < len(pool); i++ {
		if pool[i].Calories != first.Calories {
			second = i
			break
		}
	}
	if second > 0 {
		pair := [2]models.Fruit{first, pool[second]}
		questions = append(questions, compareQuestion(pair[0], pair[1]))
		pool = append(pool[1:second], pool[second+1:]...)
	}

	categoryFruit := pool[0]
	pool = pool[1:]
	questions = append(questions, categoryQuestion(categoryFruit))

	if difficulty != models.DifficultyEasy && len(pool) > 0 {
		if q, ok := s.matchQuestion(pool[0], pool[1:]); ok {
			questions = append(questions, q)
		}
	}

	return questions
}

func (s *GameService) guessQuestion(fruit models.Fruit) models.GameQuestion {
	values := scoring.Distractors(fruit.Calories, s.rng)
	options := make([]string, len(values))
	for i, v := range values {
		options[i] = strconv.Itoa(v)
	}

	name := strings.ToLower(fruit.Name)
	return models.GameQuestion{
		Type:          models.QuestionGuess,
		Question:      fmt.Sprintf("How many calories does a %s have?", name),
		Fruits:        []models.Fruit{fruit},
		CorrectAnswer: strconv.Itoa(fruit.Calories),
		Options:       options,
		Explanation:   fmt.Sprintf("A %s has %d calories! %s", name, fruit.Calories, fruit.FunFact),
	}
}

// compareQuestion expects a and b to differ in calories
func compareQuestion(a, b models.Fruit) models.GameQuestion {
	higher, _ := scoring.HigherCalorie(a, b)
	lower := a
	if lower.ID == higher.ID {
		lower = b
	}

	return models.GameQuestion{
		Type:          models.QuestionCompare,
		Question:      "Which fruit has more calories?",
		Fruits:        []models.Fruit{a, b},
		CorrectAnswer: higher.Name,
		Options:       []string{a.Name, b.Name},
		Explanation: fmt.Sprintf("%s has %d calories, while %s has %d calories!",
			higher.Name, higher.Calories, lower.Name, lower.Calories),
	}
}

func categoryQuestion(fruit models.Fruit) models.GameQuestion {
	band := scoring.BandFor(fruit.Calories)

	options := make([]string, len(models.EnergyBands))
	for i, b := range models.EnergyBands {
		options[i] = b.Label()
	}

	return models.GameQuestion{
		Type:          models.QuestionCategory,
		Question:      fmt.Sprintf("What energy level does a %s give you?", strings.ToLower(fruit.Name)),
		Fruits:        []models.Fruit{fruit},
		CorrectAnswer: band.Label(),
		Options:       options,
		Explanation:   fmt.Sprintf("%s gives you %q because it has %d calories!", fruit.Name, band.Label(), fruit.Calories),
	}
}

// matchQuestion asks which fruit has calories close to target. Wrong options
// are drawn from others and are never themselves similar to target.
func (s *GameService) matchQuestion(target models.Fruit, others []models.Fruit) (models.GameQuestion, bool) {
	similar := scoring.SimilarCalories(target, catalog.All())
	if len(similar) == 0 {
		return models.GameQuestion{}, false
	}
	answer := similar[0]

	candidates := make([]models.Fruit, 0, len(others)+catalog.Len())
	candidates = append(candidates, others...)
	candidates = append(candidates, catalog.Shuffled(s.rng)...)

	options := []string{answer.Name}
	for _, f := range candidates {
		if len(options) == 3 {
			break
		}
		if f.ID == target.ID || scoring.Difference(f.Calories, target.Calories) <= scoring.SimilarWindow {
			continue
		}
		if containsString(options, f.Name) {
			continue
		}
		options = append(options, f.Name)
	}
	if len(options) < 2 {
		return models.GameQuestion{}, false
	}

	shuffleStrings(s.rng, options)

	return models.GameQuestion{
		Type:          models.QuestionMatch,
		Question:      fmt.Sprintf("Which fruit has similar calories to %s (%d calories)?", target.Name, target.Calories),
		Fruits:        []models.Fruit{target},
		CorrectAnswer: answer.Name,
		Options:       options,
		Explanation: fmt.Sprintf("%s has %d calories, which is very close to %s's %d calories!",
			answer.Name, answer.Calories, target.Name, target.Calories),
	}, true
}

// GameSession tracks one child's run through a learning game.
// It is not safe for concurrent use.
type GameSession struct {
	Difficulty models.Difficulty
	Questions  []models.GameQuestion

	current int
	score   int
}

// AnswerResult is the feedback shown after answering a question
type AnswerResult struct {
	Correct       bool
	CorrectAnswer string
	Explanation   string
	Score         int
	Done          bool
}

// Current returns the question waiting for an answer
func (g *GameSession) Current() (models.GameQuestion, bool) {
	if g.Done() {
		return models.GameQuestion{}, false
	}
	return g.Questions[g.current], true
}

// Answer scores the current question and advances the game
func (g *GameSession) Answer(answer string) (*AnswerResult, error) {
	q, ok := g.Current()
	if !ok {
		return nil, ErrGameComplete
	}

	correct := strings.TrimSpace(answer) == q.CorrectAnswer
	if correct {
		g.score++
	}
	g.current++

	return &AnswerResult{
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Score:         g.score,
		Done:          g.Done(),
	}, nil
}

// Score is the number of correct answers so far
func (g *GameSession) Score() int {
	return g.score
}

// Total is the number of questions in the game
func (g *GameSession) Total() int {
	return len(g.Questions)
}

// Position is the zero-based index of the current question
func (g *GameSession) Position() int {
	return g.current
}

// Done reports whether every question was answered
func (g *GameSession) Done() bool {
	return g.current >= len(g.Questions)
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}

func shuffleStrings(r *rand.Rand, items []string) {
	swap := func(i, j int) { items[i], items[j] = items[j], items[i] }
	if r == nil {
		rand.Shuffle(len(items), swap)
		return
	}
	r.Shuffle(len(items), swap)
}
