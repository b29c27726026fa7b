package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id"`
	Timestamp time.Time       `json:"timestamp"`
	Sequence  uint64          `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run test_preview.go <session_id> [element_id]")
		fmt.Println("Example: go run test_preview.go abc123 submit-button")
		os.Exit(1)
	}

	sessionID := os.Args[1]

	elementID := "submit-button"
	if len(os.Args) > 2 {
		elementID = os.Args[2]
	}

	u := url.URL{
		Scheme: "ws",
		Host:   "localhost:8080",
		Path:   "/api/v1/ws/preview",
	}
	q := u.Query()
	q.Set("session_id", sessionID)
	u.RawQuery = q.Encode()

	fmt.Printf("Connecting to %s\n", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer c.Close()

	fmt.Println("✅ Connected to preview channel!")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("read:", err)
				return
			}
			fmt.Printf("📨 Received: %s\n", message)
		}
	}()

	// click an element, then clear the selection
	time.Sleep(1 * time.Second)

	click := map[string]interface{}{
		"type": "element_click",
		"payload": map[string]interface{}{
			"element_id": elementID,
		},
	}

	if err := c.WriteJSON(click); err != nil {
		log.Println("write:", err)
	}
	fmt.Printf("🖱️  Clicked element: %s\n", elementID)

	time.Sleep(2 * time.Second)

	clearSelection := map[string]interface{}{
		"type":    "clear_selection",
		"payload": map[string]interface{}{},
	}

	if err := c.WriteJSON(clearSelection); err != nil {
		log.Println("write:", err)
	}
	fmt.Println("🧹 Cleared selection")

	select {
	case <-done:
	case <-interrupt:
		fmt.Println("interrupted, closing connection")

		err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			log.Println("write close:", err)
		}

		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
