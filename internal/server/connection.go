package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Avatar uploads ride the
	// socket as base64 data URLs, so this must exceed the avatar byte limit
	// with base64 overhead.
	maxMessageSize = 2 << 20
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection wraps one websocket client. Besides the read/write pumps it
// tracks which broadcast channels the client has subscribed to; channel
// names are unguessable, so holding a name is holding the capability.
type Connection struct {
	conn   *websocket.Conn
	send   chan *Message
	server *Server
	logger *log.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.RWMutex
	subscriptions map[string]bool

	closeOnce sync.Once
}

func newConnection(conn *websocket.Conn, server *Server) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:          conn,
		send:          make(chan *Message, 256),
		server:        server,
		logger:        server.logger.WithPrefix("conn"),
		ctx:           ctx,
		cancel:        cancel,
		subscriptions: make(map[string]bool),
	}
}

// start begins handling the connection
func (c *Connection) start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// Send queues a message for the client
func (c *Connection) Send(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, expected during shutdown
			c.logger.Debug("attempted to send on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

func (c *Connection) subscribe(channel string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscriptions[channel] = true
}

func (c *Connection) unsubscribe(channel string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subscriptions, channel)
}

func (c *Connection) subscribed(channel string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.subscriptions[channel]
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// decode unmarshals a request payload, reporting a wire error on failure.
func decode[T any](c *Connection, msg *Message) (T, bool) {
	var data T
	if len(msg.Data) == 0 {
		c.sendError(codeInvalidMessage, fmt.Sprintf("missing data for %s request", msg.Type), msg.RequestID)
		return data, false
	}
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		c.sendError(codeInvalidMessage, fmt.Sprintf("failed to parse %s request", msg.Type), msg.RequestID)
		return data, false
	}
	return data, true
}

// handleMessage dispatches one incoming request.
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("received message", "type", msg.Type, "request_id", msg.RequestID)

	switch msg.Type {
	case MessageTypeCreateGame:
		if data, ok := decode[CreateGameData](c, msg); ok {
			c.handleCreateGame(data, msg.RequestID)
		}
	case MessageTypeJoinGame:
		if data, ok := decode[JoinGameData](c, msg); ok {
			c.handleJoinGame(data, msg.RequestID)
		}
	case MessageTypeLeaveGame:
		if data, ok := decode[LeaveGameData](c, msg); ok {
			c.handleLeaveGame(data, msg.RequestID)
		}
	case MessageTypeListGames:
		c.handleListGames(msg.RequestID)
	case MessageTypeGetState:
		if data, ok := decode[GetStateData](c, msg); ok {
			c.handleGetState(data, msg.RequestID)
		}
	case MessageTypeEndGame:
		if data, ok := decode[EndGameData](c, msg); ok {
			c.handleEndGame(data, msg.RequestID)
		}
	case MessageTypeLoadBoard:
		if data, ok := decode[LoadBoardData](c, msg); ok {
			c.handleLoadBoard(data, msg.RequestID)
		}
	case MessageTypeSelectSquare:
		if data, ok := decode[SelectSquareData](c, msg); ok {
			c.handleSelectSquare(data, msg.RequestID)
		}
	case MessageTypeEnableBuzzer:
		if data, ok := decode[EnableBuzzerData](c, msg); ok {
			c.handleEnableBuzzer(data, msg.RequestID)
		}
	case MessageTypeSubmitWager:
		if data, ok := decode[SubmitWagerData](c, msg); ok {
			c.handleSubmitWager(data, msg.RequestID)
		}
	case MessageTypeBuzz:
		if data, ok := decode[BuzzData](c, msg); ok {
			c.handleBuzz(data, msg.RequestID)
		}
	case MessageTypeAnswer:
		if data, ok := decode[AnswerData](c, msg); ok {
			c.handleAnswer(data, msg.RequestID)
		}
	case MessageTypeStartFinal:
		if data, ok := decode[StartFinalData](c, msg); ok {
			c.handleStartFinal(data, msg.RequestID)
		}
	case MessageTypeRevealFinalQuestion:
		if data, ok := decode[RevealFinalQuestionData](c, msg); ok {
			c.handleRevealFinalQuestion(data, msg.RequestID)
		}
	case MessageTypeLockFinalAnswers:
		if data, ok := decode[LockFinalAnswersData](c, msg); ok {
			c.handleLockFinalAnswers(data, msg.RequestID)
		}
	case MessageTypeRevealFinalInfo:
		if data, ok := decode[RevealFinalInfoData](c, msg); ok {
			c.handleRevealFinalInfo(data, msg.RequestID)
		}
	case MessageTypeEvaluateFinalAnswer:
		if data, ok := decode[EvaluateFinalAnswerData](c, msg); ok {
			c.handleEvaluateFinalAnswer(data, msg.RequestID)
		}
	case MessageTypeSubmitFinalWager:
		if data, ok := decode[SubmitFinalWagerData](c, msg); ok {
			c.handleSubmitFinalWager(data, msg.RequestID)
		}
	case MessageTypeSubmitFinalAnswer:
		if data, ok := decode[SubmitFinalAnswerData](c, msg); ok {
			c.handleSubmitFinalAnswer(data, msg.RequestID)
		}
	case MessageTypeSetSquareState:
		if data, ok := decode[SetSquareStateData](c, msg); ok {
			c.handleSetSquareState(data, msg.RequestID)
		}
	case MessageTypeSetPlayerScore:
		if data, ok := decode[SetPlayerScoreData](c, msg); ok {
			c.handleSetPlayerScore(data, msg.RequestID)
		}
	case MessageTypeChat:
		if data, ok := decode[ChatData](c, msg); ok {
			c.handleChat(data, msg.RequestID)
		}
	case MessageTypeSubscribe:
		if data, ok := decode[SubscribeData](c, msg); ok {
			c.handleSubscribe(data, msg.RequestID)
		}
	case MessageTypeUnsubscribe:
		if data, ok := decode[UnsubscribeData](c, msg); ok {
			c.handleUnsubscribe(data, msg.RequestID)
		}
	default:
		c.sendError(codeUnknownMessage, "unknown message type: "+msg.Type.String(), msg.RequestID)
	}
}

// sendResult replies to a request with a typed payload.
func (c *Connection) sendResult(messageType MessageType, data interface{}, requestID string) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		c.logger.Error("failed to create response", "type", messageType, "error", err)
		return
	}
	msg.RequestID = requestID
	_ = c.Send(msg)
}

// sendOK acknowledges a mutating request that has no other payload.
func (c *Connection) sendOK(requestID string) {
	c.sendResult(MessageTypeOK, struct{}{}, requestID)
}

// sendError reports a failed request.
func (c *Connection) sendError(code, message, requestID string) {
	c.sendResult(MessageTypeError, ErrorData{Code: code, Message: message}, requestID)
}

// sendFailure reports a failed operation under its mapped wire code.
func (c *Connection) sendFailure(err error, requestID string) {
	c.sendError(errorCode(err), err.Error(), requestID)
}
