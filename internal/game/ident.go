package game

import (
	"fmt"

	"github.com/google/uuid"
)

// GameID identifies one running game. IDs are opaque 128-bit random values
// compared only by equality and rendered as hyphenated hex at the boundary.
type GameID uuid.UUID

func NewGameID() GameID          { return GameID(uuid.New()) }
func (id GameID) String() string { return uuid.UUID(id).String() }
func (id GameID) IsZero() bool   { return id == GameID{} }

// ParseGameID decodes the hyphenated hex form.
func ParseGameID(s string) (GameID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return GameID{}, fmt.Errorf("game: parse game id: %w", err)
	}
	return GameID(u), nil
}

// PlayerID identifies one participant within a game, the moderator included.
type PlayerID uuid.UUID

func NewPlayerID() PlayerID        { return PlayerID(uuid.New()) }
func (id PlayerID) String() string { return uuid.UUID(id).String() }
func (id PlayerID) IsZero() bool   { return id == PlayerID{} }

// ParsePlayerID decodes the hyphenated hex form.
func ParsePlayerID(s string) (PlayerID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return PlayerID{}, fmt.Errorf("game: parse player id: %w", err)
	}
	return PlayerID(u), nil
}

// Token is the capability proving a participant's identity. Knowing the
// token is the entire authorization model, so tokens travel only in direct
// responses and never in broadcasts.
type Token uuid.UUID

func NewToken() Token          { return Token(uuid.New()) }
func (t Token) String() string { return uuid.UUID(t).String() }

// ParseToken decodes the hyphenated hex form.
func ParseToken(s string) (Token, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Token{}, fmt.Errorf("game: parse token: %w", err)
	}
	return Token(u), nil
}
