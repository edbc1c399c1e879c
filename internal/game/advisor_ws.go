package game

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// wsMsg is the JSON envelope exchanged with a hint service.
type wsMsg struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	wsTypeHintRequest  = "hint_request"
	wsTypeHintResponse = "hint_response"
)

// WSAdvisor speaks the advisor contract to a remote hint service over a
// websocket. One in-flight request at a time, which matches the session's
// single-slot mailbox.
type WSAdvisor struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	inCh   chan wsMsg
	closed bool

	// timeout bounds how long Recommend waits for a reply.
	timeout time.Duration
}

// DialAdvisor connects to a hint service at wsURL.
func DialAdvisor(wsURL string, timeout time.Duration) (*WSAdvisor, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout:  5 * time.Second,
		EnableCompression: true,
	}
	c, resp, err := dialer.Dial(wsURL, http.Header{})
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
			log.Printf("advisor dial failed: %s", resp.Status)
		} else {
			log.Printf("advisor dial failed: %v", err)
		}
		return nil, err
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	a := &WSAdvisor{conn: c, inCh: make(chan wsMsg, 16), timeout: timeout}
	go a.reader()
	return a, nil
}

func (a *WSAdvisor) reader() {
	for {
		a.mu.Lock()
		c := a.conn
		a.mu.Unlock()
		if c == nil {
			return
		}
		_, data, err := c.ReadMessage()
		if err != nil {
			a.mu.Lock()
			a.closed = true
			a.conn = nil
			a.mu.Unlock()
			close(a.inCh)
			return
		}
		var m wsMsg
		if err := json.Unmarshal(data, &m); err != nil {
			continue
		}
		a.inCh <- m
	}
}

// Recommend sends the request and waits for the next hint response, up to
// the configured timeout. Errors here are recoverable: the session reports
// a neutral status and keeps playing.
func (a *WSAdvisor) Recommend(req HintRequest) (HintResponse, error) {
	a.mu.Lock()
	if a.closed || a.conn == nil {
		a.mu.Unlock()
		return HintResponse{}, errors.New("advisor: connection closed")
	}
	c := a.conn
	a.mu.Unlock()

	payload, err := json.Marshal(req)
	if err != nil {
		return HintResponse{}, err
	}
	env, _ := json.Marshal(wsMsg{Type: wsTypeHintRequest, Data: payload})
	if err := c.WriteMessage(websocket.TextMessage, env); err != nil {
		a.mu.Lock()
		a.closed = true
		a.conn = nil
		a.mu.Unlock()
		return HintResponse{}, err
	}

	deadline := time.NewTimer(a.timeout)
	defer deadline.Stop()
	for {
		select {
		case m, ok := <-a.inCh:
			if !ok {
				return HintResponse{}, errors.New("advisor: connection closed")
			}
			if m.Type != wsTypeHintResponse {
				continue // unrelated service chatter
			}
			var resp HintResponse
			if err := json.Unmarshal(m.Data, &resp); err != nil {
				return HintResponse{}, err
			}
			return resp, nil
		case <-deadline.C:
			return HintResponse{}, errors.New("advisor: timed out")
		}
	}
}

// Close tears down the connection.
func (a *WSAdvisor) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	c := a.conn
	a.conn = nil
	a.mu.Unlock()
	if c != nil {
		return c.Close()
	}
	return nil
}
