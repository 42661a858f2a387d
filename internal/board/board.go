// Package board models a trivia board: a grid of squares grouped into
// categories, each square holding a clue, an answer and a flip state. Boards
// carry an etag that changes on every mutable access so clients can cheaply
// detect staleness.
package board

import (
	"errors"
	"fmt"

	"github.com/lox/quizshow/internal/seed"
)

// CategoryHeight is the number of squares in every category.
const CategoryHeight = 5

var (
	ErrInvalidLocation   = errors.New("board: location out of bounds")
	ErrInvalidTransition = errors.New("board: invalid square state transition")
)

// SquareState tracks how far a square has progressed through play.
type SquareState int

const (
	// Normal squares have not been selected yet.
	Normal SquareState = iota
	// DailyDoubleRevealed squares are selected daily doubles awaiting a wager.
	DailyDoubleRevealed
	// Flipped squares show their clue and are in play.
	Flipped
	// Finished squares are done and show their answer.
	Finished
)

func (s SquareState) String() string {
	return [...]string{"Normal", "DailyDoubleRevealed", "Flipped", "Finished"}[s]
}

// ParseSquareState maps a wire name back to a state.
func ParseSquareState(name string) (SquareState, error) {
	switch name {
	case "Normal":
		return Normal, nil
	case "DailyDoubleRevealed":
		return DailyDoubleRevealed, nil
	case "Flipped":
		return Flipped, nil
	case "Finished":
		return Finished, nil
	}
	return 0, fmt.Errorf("%w: unknown square state %q", ErrInvalidTransition, name)
}

func (s SquareState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SquareState) UnmarshalText(text []byte) error {
	parsed, err := ParseSquareState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Clue is what players are shown. Either field may be empty; a clue can be
// pure text, a media link, or both.
type Clue struct {
	Text string `json:"text,omitempty"`
	Link string `json:"link,omitempty"`
}

// Square is one cell of the board. Its state only changes through Board
// methods so that every mutation bumps the board etag.
type Square struct {
	Clue          Clue
	Answer        string
	IsDailyDouble bool

	state SquareState
}

// NewSquare returns an unflipped, non-daily-double square.
func NewSquare(clue Clue, answer string) Square {
	return Square{Clue: clue, Answer: answer, state: Normal}
}

// State reports the square's current flip state.
func (s *Square) State() SquareState { return s.state }

// Category is one column of the board.
type Category struct {
	Title      string
	Commentary string
	AirYear    int
	Squares    [CategoryHeight]Square
}

// Board is the playing grid for one round.
//
// The etag increments on every mutable square access, whether or not the
// mutation then succeeds. The id is a per-game counter assigned when the
// board is created. Together (id, etag) identify a board state exactly.
type Board struct {
	categories []Category
	multiplier int64
	etag       int
	id         int
	seed       seed.Seed
}

// New builds a board with every square Normal and no daily doubles; callers
// mark daily doubles afterwards from the sampler's output. Square values run
// multiplier, 2*multiplier, ... down each category.
func New(categories []Category, multiplier int64, id int, s seed.Seed) *Board {
	return &Board{
		categories: categories,
		multiplier: multiplier,
		id:         id,
		seed:       s,
	}
}

func (b *Board) Width() int        { return len(b.categories) }
func (b *Board) Multiplier() int64 { return b.multiplier }
func (b *Board) ETag() int         { return b.etag }
func (b *Board) ID() int           { return b.id }
func (b *Board) Seed() seed.Seed   { return b.seed }

func (b *Board) contains(loc Location) bool {
	return loc.Category >= 0 && loc.Category < len(b.categories) &&
		loc.Row >= 0 && loc.Row < CategoryHeight
}

// SquareAt returns a copy of the addressed square.
func (b *Board) SquareAt(loc Location) (Square, error) {
	if !b.contains(loc) {
		return Square{}, fmt.Errorf("%w: %s", ErrInvalidLocation, loc)
	}
	return b.categories[loc.Category].Squares[loc.Row], nil
}

// squareMut bumps the etag and returns the addressed square for mutation.
func (b *Board) squareMut(loc Location) (*Square, error) {
	if !b.contains(loc) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLocation, loc)
	}
	b.etag++
	return &b.categories[loc.Category].Squares[loc.Row], nil
}

// Value is what a correct answer on the square is worth, daily-double wagers
// aside. loc must be on the board.
func (b *Board) Value(loc Location) int64 {
	return b.multiplier * int64(loc.Row+1)
}

// Flip reveals a square: Normal becomes DailyDoubleRevealed for daily
// doubles, Flipped otherwise. Any other starting state is rejected.
func (b *Board) Flip(loc Location) error {
	sq, err := b.squareMut(loc)
	if err != nil {
		return err
	}
	if sq.state != Normal {
		return fmt.Errorf("%w: flip from %s", ErrInvalidTransition, sq.state)
	}
	if sq.IsDailyDouble {
		sq.state = DailyDoubleRevealed
	} else {
		sq.state = Flipped
	}
	return nil
}

// Finish retires a revealed square. Only Flipped and DailyDoubleRevealed
// squares can finish.
func (b *Board) Finish(loc Location) error {
	sq, err := b.squareMut(loc)
	if err != nil {
		return err
	}
	if sq.state != Flipped && sq.state != DailyDoubleRevealed {
		return fmt.Errorf("%w: finish from %s", ErrInvalidTransition, sq.state)
	}
	sq.state = Finished
	return nil
}

// SetSquareState forces a square into an arbitrary state. Moderator override;
// no transition rules apply.
func (b *Board) SetSquareState(loc Location, state SquareState) error {
	sq, err := b.squareMut(loc)
	if err != nil {
		return err
	}
	sq.state = state
	return nil
}

// MarkDailyDouble flags a square as a daily double.
func (b *Board) MarkDailyDouble(loc Location) error {
	sq, err := b.squareMut(loc)
	if err != nil {
		return err
	}
	sq.IsDailyDouble = true
	return nil
}
