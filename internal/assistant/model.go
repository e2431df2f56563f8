package assistant

import "time"

// Supported assistant languages.
const (
	LangEnglish = "en"
	LangHausa   = "ha"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single turn in a chat session.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession groups a user's conversation with the assistant.
type ChatSession struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId,omitempty"`
	Title     string        `json:"title"`
	Messages  []ChatMessage `json:"messages"`
	Language  string        `json:"language"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// SessionSummary is the list view of a session, without the full transcript.
type SessionSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Language     string    `json:"language"`
	MessageCount int       `json:"messageCount"`
	LastMessage  string    `json:"lastMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// QuickAnswer is a canned question/answer pair surfaced on the chat screen.
type QuickAnswer struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Icon     string `json:"icon"`
}
