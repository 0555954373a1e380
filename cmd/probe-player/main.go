// probe-player is a throwaway websocket client for poking at a running
// server: it queues, answers every opponent message with a canned line, and
// votes after a few exchanges.
package main

import (
	"encoding/json"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

var smallTalk = []string{
	"not much, you?",
	"honestly just waiting for the weekend",
	"that's a fair point",
	"ha, I was about to say the same thing",
	"depends on the day really",
}

type gameStart struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

type gameMessage struct {
	Message  string `json:"message"`
	Opponent bool   `json:"opponent"`
}

type gameEnd struct {
	Winner *string `json:"winner"`
}

func main() {
	wsURL := getenv("WS_URL", "ws://localhost:8080/ws")
	voteAfter := 3

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	write(conn, map[string]any{"type": "queue"})
	log.Println("queued, waiting for a match")

	var gameID, role string
	opponentTurns := 0
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var base struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &base); err != nil {
			continue
		}
		switch base.Type {
		case "game-start":
			var start gameStart
			if err := json.Unmarshal(raw, &start); err != nil {
				continue
			}
			gameID, role = start.ID, start.Role
			log.Printf("matched: game=%s role=%s", gameID, role)
			if role == "human" {
				reply(conn, gameID, "hey, what's up?")
			}
		case "game-message":
			var msg gameMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				continue
			}
			if !msg.Opponent {
				continue
			}
			log.Printf("opponent: %s", msg.Message)
			opponentTurns++
			if role == "human" && opponentTurns >= voteAfter {
				write(conn, map[string]any{"type": "game-vote", "game": gameID, "human": rand.Intn(2) == 0})
				continue
			}
			reply(conn, gameID, smallTalk[rand.Intn(len(smallTalk))])
		case "game-end":
			var end gameEnd
			_ = json.Unmarshal(raw, &end)
			if end.Winner != nil {
				log.Printf("game over, winner: %s", *end.Winner)
			} else {
				log.Println("game over, no verdict")
			}
			return
		case "error":
			log.Printf("server error: %s", raw)
		}
	}
}

func reply(conn *websocket.Conn, gameID, text string) {
	time.Sleep(time.Duration(500+rand.Intn(1500)) * time.Millisecond)
	write(conn, map[string]any{"type": "game-message", "game": gameID, "message": text})
}

func write(conn *websocket.Conn, payload any) {
	raw, _ := json.Marshal(payload)
	_ = conn.WriteMessage(websocket.TextMessage, raw)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
