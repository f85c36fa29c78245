package model

import (
	"time"

	"github.com/google/uuid"
)

// ActionKind classifies a state-mutating contract call.
type ActionKind string

const (
	ActionMove       ActionKind = "move"
	ActionPass       ActionKind = "pass"
	ActionAbandon    ActionKind = "abandon"
	ActionNewGame    ActionKind = "newGame"
	ActionCreateGame ActionKind = "createGame"
)

// PendingAction describes the single in-flight transaction.
type PendingAction struct {
	ID          uuid.UUID  `json:"id"`
	Kind        ActionKind `json:"kind"`
	SubmittedAt time.Time  `json:"submittedAt"`
	TxHash      string     `json:"txHash,omitempty"`
}

// MoveRequest represents request for POST /game/move
type MoveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ActionResponse represents response for every POST /game/... action
type ActionResponse struct {
	Success      bool           `json:"success"`
	Kind         ActionKind     `json:"kind"`
	Submitted    ActionKind     `json:"submitted,omitempty"`
	TxHash       string         `json:"txHash,omitempty"`
	Confirmed    bool           `json:"confirmed"`
	Message      string         `json:"message"`
	NavigateAway bool           `json:"navigateAway"`
	Board        *BoardResponse `json:"board,omitempty"`
}

// GameResponse represents response for GET /game
type GameResponse struct {
	HasGame bool `json:"hasGame"`
}
