// Package flash carries one-shot messages across a redirect in a cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

const cookieName = "flash"

const (
	CategorySuccess = "success"
	CategoryDanger  = "danger"
)

type Message struct {
	Category string `json:"c"`
	Text     string `json:"t"`
}

// Add queues a message for the next page that calls Pop. Messages already
// pending on the request are kept.
func Add(w http.ResponseWriter, r *http.Request, category, text string) {
	messages := append(read(r), Message{Category: category, Text: text})

	data, err := json.Marshal(messages)
	if err != nil {
		slog.Error("failed to encode flash", "error", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func Success(w http.ResponseWriter, r *http.Request, text string) {
	Add(w, r, CategorySuccess, text)
}

func Danger(w http.ResponseWriter, r *http.Request, text string) {
	Add(w, r, CategoryDanger, text)
}

// Pop returns pending messages and clears them.
func Pop(w http.ResponseWriter, r *http.Request) []Message {
	messages := read(r)
	if len(messages) == 0 {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return messages
}

func read(r *http.Request) []Message {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var messages []Message
	err = json.Unmarshal(data, &messages)
	if err != nil {
		return nil
	}

	return messages
}
