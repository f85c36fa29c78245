package model

import "time"

// BoardCell is the decoded content of one intersection.
type BoardCell uint8

const (
	CellEmpty BoardCell = iota
	CellPlayer0
	CellPlayer1
)

// Player returns the player index owning the cell, or -1 when empty.
func (c BoardCell) Player() int {
	switch c {
	case CellPlayer0:
		return 0
	case CellPlayer1:
		return 1
	default:
		return -1
	}
}

func (c BoardCell) String() string {
	switch c {
	case CellPlayer0:
		return "player0"
	case CellPlayer1:
		return "player1"
	default:
		return "empty"
	}
}

// BoardState is a square row-major grid indexed [y][x], same as the contract.
type BoardState [][]BoardCell

// Size returns the side length of the board.
func (b BoardState) Size() int {
	return len(b)
}

// At returns the cell at row y, column x.
func (b BoardState) At(y, x int) BoardCell {
	return b[y][x]
}

// Occupied counts non-empty cells.
func (b BoardState) Occupied() int {
	n := 0
	for _, row := range b {
		for _, c := range row {
			if c != CellEmpty {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy.
func (b BoardState) Clone() BoardState {
	if b == nil {
		return nil
	}
	out := make(BoardState, len(b))
	for i, row := range b {
		out[i] = append([]BoardCell(nil), row...)
	}
	return out
}

// Winner as reported by getGameResult.
type Winner uint8

const (
	WinnerDraw Winner = iota
	WinnerPlayer0
	WinnerPlayer1
)

func (w Winner) String() string {
	switch w {
	case WinnerPlayer0:
		return "player0"
	case WinnerPlayer1:
		return "player1"
	default:
		return "draw"
	}
}

// GameOutcome is only present once the game is flagged ended.
type GameOutcome struct {
	Player1Points uint32 `json:"player1Points"`
	Player2Points uint32 `json:"player2Points"`
	Winner        Winner `json:"winner"`
}

// Turn is the side expected to move next.
type Turn int

const (
	TurnNone    Turn = -1
	TurnPlayer0 Turn = 0
	TurnPlayer1 Turn = 1
)

// BoardResponse represents response for GET /game/board
type BoardResponse struct {
	HasGame   bool         `json:"hasGame"`
	Board     [][]int      `json:"board,omitempty"` // -1 empty, 0/1 player index
	Ended     bool         `json:"ended"`
	Outcome   *GameOutcome `json:"outcome,omitempty"`
	Turn      Turn         `json:"turn"`
	Stones    [2]int       `json:"stones"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
