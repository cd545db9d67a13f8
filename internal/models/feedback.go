package models

import "time"

// Feedback is a submission of the kids' feedback form
type Feedback struct {
	ID              string     `json:"id"`
	ChildName       string     `json:"childName"`
	FavoriteFruit   string     `json:"favoriteFruit"`
	Difficulty      Difficulty `json:"difficultyLevel"`
	EnjoymentRating int        `json:"enjoymentRating"`
	Comments        string     `json:"comments,omitempty"`
	SubmittedAt     time.Time  `json:"submittedAt"`
}
