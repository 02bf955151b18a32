package decisionserver

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/nlhe/decisionengine/internal/policy"
	"github.com/nlhe/decisionengine/internal/tablestate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// Connection is one control-channel client: it posts StateUpdate frames and
// pulls Decide frames, mirroring internal/server/connection.go's
// read/write-pump split but speaking the decision-engine's own protocol
// instead of the lobby/game one.
type Connection struct {
	conn   *websocket.Conn
	send   chan *Message
	engine *policy.Engine
	logger *log.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	state *tablestate.TableState
}

// NewConnection wraps an upgraded websocket connection. engine is shared
// across connections; it holds no per-hand state.
func NewConnection(conn *websocket.Conn, engine *policy.Engine, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 16),
		engine: engine,
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the read and write pumps and blocks until the connection
// closes.
func (c *Connection) Start() {
	go c.writePump()
	c.readPump()
}

func (c *Connection) readPump() {
	defer c.cancel()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("read error", "error", err)
			}
			return
		}
		c.handleMessage(&msg)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Error("write error", "error", err)
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

func (c *Connection) handleMessage(msg *Message) {
	switch msg.Type {
	case MessageTypeStateUpdate:
		var data StateUpdateData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "failed to parse state update: "+err.Error())
			return
		}
		ts, err := buildTableState(data)
		if err != nil {
			c.sendError("invalid_state", err.Error())
			return
		}
		c.mu.Lock()
		c.state = ts
		c.mu.Unlock()
		c.decideAndReply(msg.RequestID, false)

	case MessageTypeDecide:
		var data DecideData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "failed to parse decide request: "+err.Error())
			return
		}
		c.decideAndReply(msg.RequestID, data.Trace)

	default:
		c.sendError("unknown_message_type", "unknown message type: "+msg.Type.String())
	}
}

// decideAndReply runs PolicyEngine.Decide (or DecideWithTrace) against the
// connection's current table state and posts the result back.
func (c *Connection) decideAndReply(requestID string, withTrace bool) {
	c.mu.Lock()
	ts := c.state
	c.mu.Unlock()

	if ts == nil {
		c.sendError("no_state", "no state_update posted yet")
		return
	}

	data := DecisionData{}
	if withTrace {
		d, root := c.engine.DecideWithTrace(ts, quartz.NewReal())
		data.Action = d.Action.String()
		data.Amount = d.Amount
		node := traceNodeFromNode(root)
		data.Trace = &node
	} else {
		d := c.engine.Decide(ts)
		data.Action = d.Action.String()
		data.Amount = d.Amount
	}

	reply, err := NewMessage(MessageTypeDecision, data)
	if err != nil {
		c.logger.Error("failed to build decision message", "error", err)
		return
	}
	reply.RequestID = requestID
	c.sendMessage(reply)
}

func (c *Connection) sendError(code, message string) {
	errMsg, err := NewMessage(MessageTypeError, ErrorData{Code: code, Message: message})
	if err != nil {
		c.logger.Error("failed to build error message", "error", err)
		return
	}
	c.sendMessage(errMsg)
}

func (c *Connection) sendMessage(msg *Message) {
	select {
	case c.send <- msg:
	case <-c.ctx.Done():
	default:
		c.logger.Warn("send buffer full, dropping message", "type", msg.Type)
	}
}
