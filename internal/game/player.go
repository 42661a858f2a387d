package game

// Role is what a caller is entitled to do within one game.
type Role int

const (
	RoleModerator Role = iota
	RolePlayer
)

func (r Role) String() string {
	return [...]string{"Moderator", "Player"}[r]
}

// Player is one contestant. Scores are signed and may go negative.
type Player struct {
	Name      string
	Score     int64
	AvatarURL string

	token Token
	final FinalRecord
}

// NewPlayer creates a player with a fresh auth token and a zero score.
func NewPlayer(name, avatarURL string) *Player {
	return &Player{Name: name, AvatarURL: avatarURL, token: NewToken()}
}

// Token returns the player's capability. Only create/join responses may
// carry it back to the caller.
func (p *Player) Token() Token { return p.token }

// CheckToken reports whether the presented token matches.
func (p *Player) CheckToken(t Token) bool { return p.token == t }
