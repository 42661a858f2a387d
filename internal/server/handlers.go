package server

import (
	"github.com/lox/quizshow/internal/board"
	"github.com/lox/quizshow/internal/game"
	"github.com/lox/quizshow/internal/seed"
)

// parseAuth resolves the identity fields every authenticated request carries.
func parseAuth(a AuthData) (game.GameID, game.PlayerID, game.Token, error) {
	gameID, err := game.ParseGameID(a.GameID)
	if err != nil {
		return game.GameID{}, game.PlayerID{}, game.Token{}, err
	}
	playerID, err := game.ParsePlayerID(a.PlayerID)
	if err != nil {
		return game.GameID{}, game.PlayerID{}, game.Token{}, err
	}
	token, err := game.ParseToken(a.Token)
	if err != nil {
		return game.GameID{}, game.PlayerID{}, game.Token{}, err
	}
	return gameID, playerID, token, nil
}

// stateBroadcasts renders one state_update per audience channel. Snapshots
// are taken while the game's write lock is still held so the broadcast order
// matches the update order.
func stateBroadcasts(g *game.Game) []outbound {
	var out []outbound
	for _, b := range []struct {
		channel  string
		audience game.Audience
	}{
		{g.ModeratorChannel, game.ForModerator},
		{g.PlayerChannel, game.ForPlayers},
	} {
		msg, err := NewMessage(MessageTypeStateUpdate, StateUpdateData{State: g.Snapshot(b.audience)})
		if err != nil {
			continue
		}
		msg.Channel = b.channel
		out = append(out, outbound{channel: b.channel, msg: msg})
	}
	return out
}

// mutateGame authorizes the caller, applies op under the game's write lock,
// acknowledges the request and broadcasts the new state. Ending games are
// removed from the registry after their final broadcast.
func (c *Connection) mutateGame(auth AuthData, requestID string, op func(g *game.Game, caller game.PlayerID, role game.Role) error) {
	gameID, playerID, token, err := parseAuth(auth)
	if err != nil {
		c.sendError(codeBadRequest, err.Error(), requestID)
		return
	}

	s := c.server
	var (
		out    []outbound
		ended  bool
		chatCh string
	)
	err = s.registry.Update(gameID, func(g *game.Game) error {
		role, err := g.Authorize(playerID, token)
		if err != nil {
			return err
		}
		if err := op(g, playerID, role); err != nil {
			return err
		}
		out = stateBroadcasts(g)
		ended = g.Ended
		chatCh = g.ChatChannel
		return nil
	})
	if err != nil {
		c.sendFailure(err, requestID)
		return
	}

	c.sendOK(requestID)
	s.send(out...)

	if ended {
		s.publishChat(chatCh, "", "the moderator ended the game")
		if err := s.registry.Remove(gameID); err != nil {
			s.logger.Warn("failed to remove ended game", "game_id", gameID, "error", err)
		}
		s.publishLobby()
	}
}

func (c *Connection) handleCreateGame(data CreateGameData, requestID string) {
	if data.Name == "" {
		c.sendError(codeBadRequest, "a moderator name is required", requestID)
		return
	}

	s := c.server
	avatarURL, err := s.ingestAvatar(data.Avatar)
	if err != nil {
		c.sendFailure(err, requestID)
		return
	}

	g := game.New(data.Name, avatarURL, s.clock.Now())
	resp := GameCreatedData{
		PlayerID:         g.ModeratorID().String(),
		Token:            g.ModeratorToken().String(),
		ModeratorChannel: g.ModeratorChannel,
		PlayerChannel:    g.PlayerChannel,
		ChatChannel:      g.ChatChannel,
	}

	id, err := s.registry.Insert(g)
	if err != nil {
		c.sendFailure(err, requestID)
		return
	}
	resp.GameID = id.String()

	c.sendResult(MessageTypeGameCreated, resp, requestID)
	s.publishLobby()
	s.logger.Info("game created", "game_id", id, "moderator", data.Name)
}

func (c *Connection) handleJoinGame(data JoinGameData, requestID string) {
	gameID, err := game.ParseGameID(data.GameID)
	if err != nil {
		c.sendError(codeBadRequest, err.Error(), requestID)
		return
	}
	if data.Name == "" {
		c.sendError(codeBadRequest, "a player name is required", requestID)
		return
	}

	s := c.server
	avatarURL, err := s.ingestAvatar(data.Avatar)
	if err != nil {
		c.sendFailure(err, requestID)
		return
	}

	p := game.NewPlayer(data.Name, avatarURL)
	resp := GameJoinedData{GameID: gameID.String(), Token: p.Token().String()}
	var (
		out    []outbound
		chatCh string
	)
	err = s.registry.Update(gameID, func(g *game.Game) error {
		id := g.AddPlayer(p)
		resp.PlayerID = id.String()
		resp.PlayerChannel = g.PlayerChannel
		resp.ChatChannel = g.ChatChannel
		chatCh = g.ChatChannel
		out = stateBroadcasts(g)
		return nil
	})
	if err != nil {
		c.sendFailure(err, requestID)
		return
	}

	c.sendResult(MessageTypeGameJoined, resp, requestID)
	s.send(out...)
	s.publishChat(chatCh, "", data.Name+" joined the game")
	s.publishLobby()
	s.logger.Info("player joined", "game_id", gameID, "player", data.Name)
}

// handleLeaveGame removes a player from the roster. Players may remove
// themselves; the moderator may remove anyone.
func (c *Connection) handleLeaveGame(data LeaveGameData, requestID string) {
	gameID, playerID, token, err := parseAuth(data.AuthData)
	if err != nil {
		c.sendError(codeBadRequest, err.Error(), requestID)
		return
	}

	target := playerID
	if data.TargetPlayerID != "" {
		target, err = game.ParsePlayerID(data.TargetPlayerID)
		if err != nil {
			c.sendError(codeBadRequest, err.Error(), requestID)
			return
		}
	}

	s := c.server
	var (
		out      []outbound
		chatCh   string
		leftName string
	)
	err = s.registry.Update(gameID, func(g *game.Game) error {
		role, err := g.Authorize(playerID, token)
		if err != nil {
			return err
		}
		if target != playerID && role != game.RoleModerator {
			return game.ErrNotAllowed
		}
		leftName, _ = g.PlayerName(target)
		if err := g.RemovePlayer(target); err != nil {
			return err
		}
		chatCh = g.ChatChannel
		out = stateBroadcasts(g)
		return nil
	})
	if err != nil {
		c.sendFailure(err, requestID)
		return
	}

	c.sendOK(requestID)
	s.send(out...)
	s.publishChat(chatCh, "", leftName+" left the game")
	s.publishLobby()
}

func (c *Connection) handleListGames(requestID string) {
	games, err := c.server.listGames()
	if err != nil {
		c.sendFailure(err, requestID)
		return
	}
	c.sendResult(MessageTypeGameList, GameListData{Games: games}, requestID)
}

func (c *Connection) handleGetState(data GetStateData, requestID string) {
	gameID, playerID, token, err := parseAuth(data.AuthData)
	if err != nil {
		c.sendError(codeBadRequest, err.Error(), requestID)
		return
	}

	var snap game.Snapshot
	err = c.server.registry.View(gameID, func(g *game.Game) error {
		role, err := g.Authorize(playerID, token)
		if err != nil {
			return err
		}
		aud := game.ForPlayers
		if role == game.RoleModerator {
			aud = game.ForModerator
		}
		snap = g.Snapshot(aud)
		return nil
	})
	if err != nil {
		c.sendFailure(err, requestID)
		return
	}

	c.sendResult(MessageTypeGameState, GameStateData{State: snap}, requestID)
}

func (c *Connection) handleEndGame(data EndGameData, requestID string) {
	c.mutateGame(data.AuthData, requestID, func(g *game.Game, _ game.PlayerID, role game.Role) error {
		if role != game.RoleModerator {
			return game.ErrNotAllowed
		}
		g.Ended = true
		return nil
	})
}

func (c *Connection) handleLoadBoard(data LoadBoardData, requestID string) {
	s := c.server

	multiplier := data.Multiplier
	if multiplier <= 0 {
		multiplier = s.cfg.Board.Multiplier
	}
	categories := data.Categories
	if categories <= 0 {
		categories = s.cfg.Board.Categories
	}
	dailyDoubles := s.cfg.Board.DailyDoubles
	if data.DailyDoubles != nil {
		dailyDoubles = *data.DailyDoubles
	}

	// A malformed seed phrase falls back to a fresh random seed rather than
	// failing the load.
	sd := seed.Random()
	if data.Seed != "" {
		parsed, err := seed.Parse(data.Seed)
		if err != nil {
			s.logger.Warn("invalid seed phrase, using a random seed", "seed", data.Seed, "error", err)
		} else {
			sd = parsed
		}
	}

	c.mutateGame(data.AuthData, requestID, func(g *game.Game, _ game.PlayerID, role game.Role) error {
		if role != game.RoleModerator {
			return game.ErrNotAllowed
		}
		return g.LoadNewBoard(s.questions, multiplier, dailyDoubles, categories, sd)
	})
}

func (c *Connection) handleSelectSquare(data SelectSquareData, requestID string) {
	c.mutateGame(data.AuthData, requestID, func(g *game.Game, caller game.PlayerID, _ game.Role) error {
		return g.SelectSquare(caller, data.Location)
	})
}

func (c *Connection) handleEnableBuzzer(data EnableBuzzerData, requestID string) {
	c.mutateGame(data.AuthData, requestID, func(g *game.Game, _ game.PlayerID, role game.Role) error {
		if role != game.RoleModerator {
			return game.ErrNotAllowed
		}
		return g.EnableBuzzer()
	})
}

func (c *Connection) handleSubmitWager(data SubmitWagerData, requestID string) {
	c.mutateGame(data.AuthData, requestID, func(g *game.Game, caller game.PlayerID, _ game.Role) error {
		return g.SubmitWager(caller, data.Wager)
	})
}

func (c *Connection) handleBuzz(data BuzzData, requestID string) {
	c.mutateGame(data.AuthData, requestID, func(g *game.Game, caller game.PlayerID, _ game.Role) error {
		return g.Buzz(caller)
	})
}

func (c *Connection) handleAnswer(data AnswerData, requestID string) {
	v, err := game.ParseVerdict(data.Verdict)
	if err != nil {
		c.sendError(codeBadRequest, err.Error(), requestID)
		return
	}

	c.mutateGame(data.AuthData, requestID, func(g *game.Game, _ game.PlayerID, role game.Role) error {
		if role != game.RoleModerator {
			return game.ErrNotAllowed
		}
		return g.Answer(v)
	})
}

func (c *Connection) handleStartFinal(data StartFinalData, requestID string) {
	c.mutateGame(data.AuthData, requestID, func(g *game.Game, _ game.PlayerID, role game.Role) error {
		if role != game.RoleModerator {
			return game.ErrNotAllowed
		}
		return g.StartFinalRound(c.server.questions)
	})
}

func (c *Connection) handleRevealFinalQuestion(data RevealFinalQuestionData, requestID string) {
	c.mutateGame(data.AuthData, requestID, func(g *game.Game, _ game.PlayerID, role game.Role) error {
		if role != game.RoleModerator {
			return game.ErrNotAllowed
		}
		return g.RevealFinalQuestion()
	})
}

func (c *Connection) handleLockFinalAnswers(data LockFinalAnswersData, requestID string) {
	c.mutateGame(data.AuthData, requestID, func(g *game.Game, _ game.PlayerID, role game.Role) error {
		if role != game.RoleModerator {
			return game.ErrNotAllowed
		}
		return g.LockFinalAnswers()
	})
}

func (c *Connection) handleRevealFinalInfo(data RevealFinalInfoData, requestID string) {
	target, err := game.ParsePlayerID(data.TargetPlayerID)
	if err != nil {
		c.sendError(codeBadRequest, err.Error(), requestID)
		return
	}

	var reveal func(g *game.Game) error
	switch data.What {
	case "wager":
		reveal = func(g *game.Game) error { return g.RevealFinalWager(target) }
	case "answer":
		reveal = func(g *game.Game) error { return g.RevealFinalAnswer(target) }
	default:
		c.sendError(codeBadRequest, `reveal target must be "wager" or "answer"`, requestID)
		return
	}

	c.mutateGame(data.AuthData, requestID, func(g *game.Game, _ game.PlayerID, role game.Role) error {
		if role != game.RoleModerator {
			return game.ErrNotAllowed
		}
		return reveal(g)
	})
}

func (c *Connection) handleEvaluateFinalAnswer(data EvaluateFinalAnswerData, requestID string) {
	target, err := game.ParsePlayerID(data.TargetPlayerID)
	if err != nil {
		c.sendError(codeBadRequest, err.Error(), requestID)
		return
	}
	v, err := game.ParseVerdict(data.Verdict)
	if err != nil {
		c.sendError(codeBadRequest, err.Error(), requestID)
		return
	}

	c.mutateGame(data.AuthData, requestID, func(g *game.Game, _ game.PlayerID, role game.Role) error {
		if role != game.RoleModerator {
			return game.ErrNotAllowed
		}
		return g.EvaluateFinalAnswer(target, v)
	})
}

func (c *Connection) handleSubmitFinalWager(data SubmitFinalWagerData, requestID string) {
	c.mutateGame(data.AuthData, requestID, func(g *game.Game, caller game.PlayerID, _ game.Role) error {
		return g.SubmitFinalWager(caller, data.Wager)
	})
}

func (c *Connection) handleSubmitFinalAnswer(data SubmitFinalAnswerData, requestID string) {
	c.mutateGame(data.AuthData, requestID, func(g *game.Game, caller game.PlayerID, _ game.Role) error {
		return g.SubmitFinalAnswer(caller, data.Answer)
	})
}

func (c *Connection) handleSetSquareState(data SetSquareStateData, requestID string) {
	state, err := board.ParseSquareState(data.State)
	if err != nil {
		c.sendFailure(err, requestID)
		return
	}

	c.mutateGame(data.AuthData, requestID, func(g *game.Game, _ game.PlayerID, role game.Role) error {
		if role != game.RoleModerator {
			return game.ErrNotAllowed
		}
		return g.SetSquareState(data.Location, state)
	})
}

func (c *Connection) handleSetPlayerScore(data SetPlayerScoreData, requestID string) {
	target, err := game.ParsePlayerID(data.TargetPlayerID)
	if err != nil {
		c.sendError(codeBadRequest, err.Error(), requestID)
		return
	}

	c.mutateGame(data.AuthData, requestID, func(g *game.Game, _ game.PlayerID, role game.Role) error {
		if role != game.RoleModerator {
			return game.ErrNotAllowed
		}
		return g.SetPlayerScore(target, data.Score)
	})
}

func (c *Connection) handleChat(data ChatData, requestID string) {
	if data.Text == "" {
		c.sendError(codeBadRequest, "chat text is required", requestID)
		return
	}
	gameID, playerID, token, err := parseAuth(data.AuthData)
	if err != nil {
		c.sendError(codeBadRequest, err.Error(), requestID)
		return
	}

	s := c.server
	var (
		name   string
		chatCh string
	)
	err = s.registry.View(gameID, func(g *game.Game) error {
		role, err := g.Authorize(playerID, token)
		if err != nil {
			return err
		}
		if role == game.RoleModerator {
			name = g.ModeratorName()
		} else {
			name, _ = g.PlayerName(playerID)
		}
		chatCh = g.ChatChannel
		return nil
	})
	if err != nil {
		c.sendFailure(err, requestID)
		return
	}

	c.sendOK(requestID)
	s.publishChat(chatCh, name, data.Text)
}

func (c *Connection) handleSubscribe(data SubscribeData, requestID string) {
	if data.Channel == "" {
		c.sendError(codeBadRequest, "a channel name is required", requestID)
		return
	}
	c.subscribe(data.Channel)
	c.sendOK(requestID)
}

func (c *Connection) handleUnsubscribe(data UnsubscribeData, requestID string) {
	if data.Channel == "" {
		c.sendError(codeBadRequest, "a channel name is required", requestID)
		return
	}
	c.unsubscribe(data.Channel)
	c.sendOK(requestID)
}
