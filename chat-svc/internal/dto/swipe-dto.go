package dto

import "time"

type SwipeRequest struct {
	TargetID  uint   `json:"target_id" validate:"required"`
	Direction string `json:"direction" validate:"required,oneof=like pass"`
}

type SwipeItem struct {
	ID        uint      `json:"id"`
	Target    uint      `json:"target"`
	Direction string    `json:"direction"`
	CreatedAt time.Time `json:"created_at"`
}

type SwipeResponse struct {
	Swipe        SwipeItem      `json:"swipe"`
	MatchCreated bool           `json:"match_created"`
	Match        *MatchResponse `json:"match"`
}

type DiscoverResponse struct {
	Profiles interface{} `json:"profiles"`
	Message  string      `json:"message,omitempty"`
}
