package server

import (
	"encoding/json"
	"time"

	"github.com/lox/quizshow/internal/board"
	"github.com/lox/quizshow/internal/game"
)

// Message is the envelope for every websocket frame in both directions.
// Channel is set on broadcasts so clients can route by subscription;
// RequestID echoes the client's id on direct replies.
type Message struct {
	Type      MessageType     `json:"type"`
	Channel   string          `json:"channel,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"request_id,omitempty"`
}

// NewMessage wraps data in an envelope stamped with the current time.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

// AuthData identifies the caller on every authorized request. The token is
// the capability handed out at create/join time.
type AuthData struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
	Token    string `json:"token"`
}

type CreateGameData struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"` // base64 image data URL
}

type JoinGameData struct {
	GameID string `json:"game_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// LeaveGameData removes the caller, or the named target when the caller is
// the moderator.
type LeaveGameData struct {
	AuthData
	TargetPlayerID string `json:"target_player_id,omitempty"`
}

type GetStateData struct {
	AuthData
}

type EndGameData struct {
	AuthData
}

// LoadBoardData requests a fresh board. Zero or missing fields fall back to
// the configured defaults; the seed is a mnemonic phrase and may be omitted
// for a random board.
type LoadBoardData struct {
	AuthData
	Multiplier   int64  `json:"multiplier,omitempty"`
	DailyDoubles *int   `json:"daily_doubles,omitempty"`
	Categories   int    `json:"categories,omitempty"`
	Seed         string `json:"seed,omitempty"`
}

type SelectSquareData struct {
	AuthData
	Location board.Location `json:"location"`
}

type EnableBuzzerData struct {
	AuthData
}

type SubmitWagerData struct {
	AuthData
	Wager int64 `json:"wager"`
}

type BuzzData struct {
	AuthData
}

type AnswerData struct {
	AuthData
	Verdict string `json:"verdict"`
}

type StartFinalData struct {
	AuthData
}

type RevealFinalQuestionData struct {
	AuthData
}

type LockFinalAnswersData struct {
	AuthData
}

// RevealFinalInfoData discloses one player's final-round wager or answer.
// What is "wager" or "answer".
type RevealFinalInfoData struct {
	AuthData
	TargetPlayerID string `json:"target_player_id"`
	What           string `json:"what"`
}

type EvaluateFinalAnswerData struct {
	AuthData
	TargetPlayerID string `json:"target_player_id"`
	Verdict        string `json:"verdict"`
}

type SubmitFinalWagerData struct {
	AuthData
	Wager int64 `json:"wager"`
}

type SubmitFinalAnswerData struct {
	AuthData
	Answer string `json:"answer"`
}

type SetSquareStateData struct {
	AuthData
	Location board.Location `json:"location"`
	State    string         `json:"state"`
}

type SetPlayerScoreData struct {
	AuthData
	TargetPlayerID string `json:"target_player_id"`
	Score          int64  `json:"score"`
}

type ChatData struct {
	AuthData
	Text string `json:"text"`
}

type SubscribeData struct {
	Channel string `json:"channel"`
}

type UnsubscribeData struct {
	Channel string `json:"channel"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GameCreatedData returns the moderator's credentials and every channel of
// the new game. The moderator channel is itself a capability: its state
// carries answers, so it goes only to the moderator.
type GameCreatedData struct {
	GameID           string `json:"game_id"`
	PlayerID         string `json:"player_id"`
	Token            string `json:"token"`
	ModeratorChannel string `json:"moderator_channel"`
	PlayerChannel    string `json:"player_channel"`
	ChatChannel      string `json:"chat_channel"`
}

type GameJoinedData struct {
	GameID        string `json:"game_id"`
	PlayerID      string `json:"player_id"`
	Token         string `json:"token"`
	PlayerChannel string `json:"player_channel"`
	ChatChannel   string `json:"chat_channel"`
}

type GameInfo struct {
	ID        string   `json:"id"`
	Moderator string   `json:"moderator"`
	Players   []string `json:"players"`
}

type GameListData struct {
	Games []GameInfo `json:"games"`
}

type GameStateData struct {
	State game.Snapshot `json:"state"`
}

type StateUpdateData struct {
	State game.Snapshot `json:"state"`
}

// ChatEntry is one chat line. An empty player name marks a system message.
type ChatEntry struct {
	Player string    `json:"player,omitempty"`
	Time   time.Time `json:"time"`
	Text   string    `json:"text"`
}

type ChatMessageData struct {
	Message ChatEntry `json:"message"`
}
