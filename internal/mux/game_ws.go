package mux

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"higherlower-server/pkg/deck"
	"higherlower-server/pkg/higherlower"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

// wsPayloadIn is a message from the client
// Action defaults to "guess".
type wsPayloadIn struct {
	Action         string `json:"action"`
	Guess          string `json:"guess"`
	SpecialEdition *bool  `json:"specialEdition"`
}

// wsResponse is a message to the client
type wsResponse struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// wsClient is a client connected via websockets to a single session
type wsClient struct {
	conn      *websocket.Conn
	sessionID string
	send      chan interface{}
	logger    logrus.FieldLogger
}

func newWSClient(conn *websocket.Conn, sessionID string, logger logrus.FieldLogger) *wsClient {
	return &wsClient{
		conn:      conn,
		sessionID: sessionID,
		send:      make(chan interface{}, 256),
		logger:    logger,
	}
}

// Send queues a message for the client and returns false if the queue is full
func (c *wsClient) Send(key string, value interface{}) bool {
	select {
	case c.send <- wsResponse{Key: key, Value: value}:
		return true
	default:
		c.logger.WithField("key", key).Warn("client send queue is full")
		return false
	}
}

// SpecialCardDrawn tells the client about the wildcard before the guess result is sent
func (c *wsClient) SpecialCardDrawn(card *deck.Card) {
	c.Send("special", newSpecialCard(card))
}

func (m *Mux) getGameUUIDWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connected")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		id := sessionID(r)
		client := newWSClient(conn, id, logrus.WithFields(logrus.Fields{
			"session":    id,
			"remoteAddr": remoteAddr(r),
		}))

		client.logger.Debug("client connected")
		if state, err := m.lobby.Get(id); err == nil {
			client.Send("state", state)
		}

		done := make(chan bool)
		defer func() {
			client.logger.Debug("client disconnected")
			close(done)
			_ = conn.Close()
		}()

		go m.webSocketWriteLoop(client, done)
		m.webSocketReadLoop(client)
	}
}

func (m *Mux) webSocketWriteLoop(client *wsClient, done chan bool) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case msg := <-client.send:
			msgBytes, _ := json.Marshal(msg)
			client.logger.WithField("message", string(msgBytes)).Trace("sending message to client")

			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteJSON(msg); err != nil {
				client.logger.WithError(err).Error("could not write message")
				return
			}
		}
	}
}

func (m *Mux) webSocketReadLoop(client *wsClient) {
	for {
		var msg wsPayloadIn
		if err := client.conn.ReadJSON(&msg); err != nil {
			if _, isCloseError := err.(*websocket.CloseError); !isCloseError {
				client.logger.WithError(err).Error("could not read JSON")
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				client.logger.WithError(err).Error("could not read onMessage")
			}

			return
		}

		m.receivedMessage(client, &msg)
	}
}

// receivedMessage is called when the server receives a message from a connected client
func (m *Mux) receivedMessage(client *wsClient, msg *wsPayloadIn) {
	switch msg.Action {
	case "", "guess":
		guess, err := higherlower.GuessFromString(msg.Guess)
		if err != nil {
			client.Send("error", err.Error())
			return
		}

		resp, err := m.guess(client.sessionID, guess, client)
		if err != nil {
			client.Send("error", err.Error())
			return
		}

		client.Send("guess", resp)
	case "restart":
		state, err := m.restart(client.sessionID, msg.SpecialEdition)
		if err != nil {
			client.Send("error", err.Error())
			return
		}

		client.Send("state", state)
	case "state":
		state, err := m.lobby.Get(client.sessionID)
		if err != nil {
			client.Send("error", err.Error())
			return
		}

		client.Send("state", state)
	default:
		client.Send("error", "unknown action: "+msg.Action)
	}
}
