package move

import (
	"github.com/LevanIlashvili/stylish-go-app/internal/board"
	"github.com/LevanIlashvili/stylish-go-app/internal/model"
)

// Action is a player intent. Row and Col are only meaningful for moves.
type Action struct {
	Kind model.ActionKind
	Row  int
	Col  int
}

func PlaceStone(row, col int) Action {
	return Action{Kind: model.ActionMove, Row: row, Col: col}
}

func Pass() Action {
	return Action{Kind: model.ActionPass}
}

// Abandon leaves the current game, or starts a new one if it has already ended.
func Abandon() Action {
	return Action{Kind: model.ActionAbandon}
}

func StartNewGame() Action {
	return Action{Kind: model.ActionNewGame}
}

func CreateGame() Action {
	return Action{Kind: model.ActionCreateGame}
}

type texts struct {
	sending string
	done    string
	doneMsg string
	failed  string
	failure string
}

var kindTexts = map[model.ActionKind]texts{
	model.ActionMove: {
		sending: "Placing Stone",
		done:    "Stone Placed",
		doneMsg: "Your move is on the board.",
		failed:  "Action Failed",
		failure: "Failed to place stone.",
	},
	model.ActionPass: {
		sending: "Passing Turn",
		done:    "Turn Passed",
		doneMsg: "Your pass was recorded.",
		failed:  "Action Failed",
		failure: "Failed to pass turn.",
	},
	model.ActionAbandon: {
		sending: "Abandoning Game",
		done:    "Game Abandoned",
		doneMsg: "You left the game.",
		failed:  "Action Failed",
		failure: "Failed to abandon game.",
	},
	model.ActionNewGame: {
		sending: "Starting New Game",
		done:    "New Game Started",
		doneMsg: "A fresh board is ready.",
		failed:  "Action Failed",
		failure: "Failed to start a new game.",
	},
	model.ActionCreateGame: {
		sending: "Creating Game",
		done:    "Game Created",
		doneMsg: "Your new game is ready!",
		failed:  "Creation Failed",
		failure: "Failed to create game.",
	},
}

// FailureMessage returns the user-facing text for a failed action of kind.
func FailureMessage(kind model.ActionKind) string {
	if t, ok := kindTexts[kind]; ok {
		return t.failure
	}
	return "Action failed."
}

// Result is the outcome of Perform.
type Result struct {
	OK bool
	// Kind is what was asked for; Submitted is what was sent, which differs
	// when abandoning an ended game.
	Kind         model.ActionKind
	Submitted    model.ActionKind
	TxHash       string
	Confirmed    bool
	Message      string
	Err          error
	NavigateAway bool
	Snapshot     board.Snapshot
}

// Response converts the result for the HTTP bridge.
func (r Result) Response() model.ActionResponse {
	resp := model.ActionResponse{
		Success:      r.OK,
		Kind:         r.Kind,
		Submitted:    r.Submitted,
		TxHash:       r.TxHash,
		Confirmed:    r.Confirmed,
		Message:      r.Message,
		NavigateAway: r.NavigateAway,
	}
	if r.Confirmed {
		b := r.Snapshot.Response()
		resp.Board = &b
	}
	return resp
}
