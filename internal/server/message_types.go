package server

// MessageType names a websocket message in either direction.
type MessageType string

const (
	// Client to server: session surface.
	MessageTypeCreateGame  MessageType = "create_game"
	MessageTypeJoinGame    MessageType = "join_game"
	MessageTypeLeaveGame   MessageType = "leave_game"
	MessageTypeListGames   MessageType = "list_games"
	MessageTypeGetState    MessageType = "get_state"
	MessageTypeEndGame     MessageType = "end_game"
	MessageTypeSubscribe   MessageType = "subscribe"
	MessageTypeUnsubscribe MessageType = "unsubscribe"
	MessageTypeChat        MessageType = "chat"

	// Client to server: board play.
	MessageTypeLoadBoard    MessageType = "load_board"
	MessageTypeSelectSquare MessageType = "select_square"
	MessageTypeEnableBuzzer MessageType = "enable_buzzer"
	MessageTypeSubmitWager  MessageType = "submit_wager"
	MessageTypeBuzz         MessageType = "buzz"
	MessageTypeAnswer       MessageType = "answer"

	// Client to server: final round.
	MessageTypeStartFinal          MessageType = "start_final"
	MessageTypeRevealFinalQuestion MessageType = "reveal_final_question"
	MessageTypeLockFinalAnswers    MessageType = "lock_final_answers"
	MessageTypeRevealFinalInfo     MessageType = "reveal_final_info"
	MessageTypeEvaluateFinalAnswer MessageType = "evaluate_final_answer"
	MessageTypeSubmitFinalWager    MessageType = "submit_final_wager"
	MessageTypeSubmitFinalAnswer   MessageType = "submit_final_answer"

	// Client to server: moderator overrides.
	MessageTypeSetSquareState MessageType = "set_square_state"
	MessageTypeSetPlayerScore MessageType = "set_player_score"

	// Server to client: direct replies.
	MessageTypeOK          MessageType = "ok"
	MessageTypeError       MessageType = "error"
	MessageTypeGameCreated MessageType = "game_created"
	MessageTypeGameJoined  MessageType = "game_joined"
	MessageTypeGameList    MessageType = "game_list"
	MessageTypeGameState   MessageType = "game_state"

	// Server to client: channel broadcasts.
	MessageTypeStateUpdate MessageType = "state_update"
	MessageTypeLobbyUpdate MessageType = "lobby_update"
	MessageTypeChatMessage MessageType = "chat_message"
)

func (mt MessageType) String() string {
	return string(mt)
}
