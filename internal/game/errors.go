package game

import "errors"

// Action validation failures. SubmitAction reports them as a rejection rather
// than returning them to the caller, so the table state never changes on an
// invalid action.
var (
	ErrIllegalTurn   = errors.New("game: not this player's turn")
	ErrNotActive     = errors.New("game: player cannot act")
	ErrInvalidAmount = errors.New("game: invalid amount for action")
)
