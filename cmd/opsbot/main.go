package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	auth "github.com/jcooper21/Well-Injection-Calculation/internal/auth"
	repo "github.com/jcooper21/Well-Injection-Calculation/internal/repo"
)

type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	MessageID int    `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type UpdateResponse struct {
	OK     bool     `json:"ok"`
	Result []Update `json:"result"`
}

func main() {
	token := os.Getenv("TOKEN_BOT")
	peerStr := os.Getenv("ADMIN_PEER_ID")
	if token == "" || peerStr == "" {
		log.Fatal("TOKEN_BOT or ADMIN_PEER_ID missing")
	}
	adminID, _ := strconv.ParseInt(peerStr, 10, 64)

	db := auth.InitDB()
	defer db.Close()
	runs := repo.NewPostgresDB(db)

	offset := 0
	for {
		updates, err := getUpdates(token, offset)
		if err != nil {
			log.Println("getUpdates error:", err)
			time.Sleep(2 * time.Second)
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			if u.Message != nil {
				handleCommand(token, adminID, runs, u.Message)
			}
		}
		time.Sleep(1 * time.Second)
	}
}

func handleCommand(token string, adminID int64, runs *repo.PostgresRepository, msg *Message) {
	if msg.Chat.ID != adminID {
		return
	}
	switch {
	case strings.HasPrefix(msg.Text, "/recent"):
		sendMessage(token, msg.Chat.ID, recentSummary(runs, false))
	case strings.HasPrefix(msg.Text, "/alerts"):
		sendMessage(token, msg.Chat.ID, recentSummary(runs, true))
	case strings.HasPrefix(msg.Text, "/start"):
		sendMessage(token, msg.Chat.ID, "Commands: /recent - last saved runs, /alerts - runs with warnings")
	}
}

func recentSummary(runs *repo.PostgresRepository, alertsOnly bool) string {
	list, err := runs.ListRecentRuns(context.Background(), 10)
	if err != nil {
		return "DB error: " + err.Error()
	}
	var b strings.Builder
	for _, run := range list {
		if alertsOnly && run.Warnings == 0 {
			continue
		}
		flag := ""
		if run.Warnings > 0 {
			flag = " [cavitation risk]"
		}
		fmt.Fprintf(&b, "%s  %s%s\n  bottomhole %.1f kPa, drop %.1f kPa, max velocity %.2f m/s\n",
			run.CreatedAt.Format("01-02 15:04"), run.Name, flag,
			run.BottomholeKPa, run.TotalDropKPa, run.MaxVelocityMS)
	}
	if b.Len() == 0 {
		if alertsOnly {
			return "No flagged runs"
		}
		return "No saved runs"
	}
	return b.String()
}

func getUpdates(token string, offset int) ([]Update, error) {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/getUpdates?timeout=20&offset=%d", token, offset)
	res, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	var out UpdateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

func sendMessage(token string, chatID int64, text string) {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", token)
	payload := map[string]any{"chat_id": chatID, "text": text}
	b, _ := json.Marshal(payload)
	_, _ = http.Post(url, "application/json", strings.NewReader(string(b)))
}
