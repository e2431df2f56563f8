package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trunorth/platform/internal/middleware"
)

const sessionTitleLength = 30

var (
	ErrEmptyMessage = errors.New("assistant: message is required")
	ErrTextTooShort = errors.New("assistant: text too short")
	ErrNotOwner     = errors.New("assistant: session belongs to another user")
)

// Service answers chat messages from an ordered keyword rule table and keeps
// per-user session transcripts.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ChatInput carries a single user turn.
type ChatInput struct {
	Message   string
	SessionID string
	Language  string
}

// Chat appends the user message to the session (creating one when SessionID
// is empty), generates the assistant reply and returns it.
func (s *Service) Chat(ctx context.Context, actor middleware.Actor, in ChatInput) (ChatMessage, *ChatSession, error) {
	if strings.TrimSpace(in.Message) == "" {
		return ChatMessage{}, nil, ErrEmptyMessage
	}

	lang := in.Language
	if lang != LangHausa {
		lang = LangEnglish
	}

	now := time.Now().UTC()
	var session *ChatSession
	if in.SessionID != "" {
		existing, err := s.repo.SessionByID(ctx, in.SessionID)
		if err != nil {
			return ChatMessage{}, nil, err
		}
		if existing.UserID != "" && existing.UserID != actor.ID {
			return ChatMessage{}, nil, ErrNotOwner
		}
		session = existing
	} else {
		session = &ChatSession{
			ID:        uuid.NewString(),
			UserID:    actor.ID,
			Title:     truncate(in.Message, sessionTitleLength) + "...",
			Messages:  []ChatMessage{},
			Language:  lang,
			CreatedAt: now,
		}
	}

	session.Messages = append(session.Messages, ChatMessage{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   in.Message,
		Timestamp: now,
	})

	reply := ChatMessage{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   Reply(in.Message, session.Language),
		Timestamp: now,
	}
	session.Messages = append(session.Messages, reply)
	session.UpdatedAt = now

	if err := s.repo.Save(ctx, session); err != nil {
		return ChatMessage{}, nil, err
	}
	return reply, session, nil
}

// Sessions lists the caller's sessions, most recently updated first.
func (s *Service) Sessions(ctx context.Context, userID string) ([]SessionSummary, error) {
	sessions, err := s.repo.SessionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]SessionSummary, 0, len(sessions))
	for _, ses := range sessions {
		summary := SessionSummary{
			ID:           ses.ID,
			Title:        ses.Title,
			Language:     ses.Language,
			MessageCount: len(ses.Messages),
			CreatedAt:    ses.CreatedAt,
			UpdatedAt:    ses.UpdatedAt,
		}
		if n := len(ses.Messages); n > 0 {
			summary.LastMessage = truncate(ses.Messages[n-1].Content, 50)
		}
		out = append(out, summary)
	}
	return out, nil
}

// Session returns the full transcript for one of the caller's sessions.
func (s *Service) Session(ctx context.Context, userID, id string) (*ChatSession, error) {
	session, err := s.repo.SessionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.UserID != "" && session.UserID != userID {
		return nil, ErrNotOwner
	}
	return session, nil
}

// DeleteSession removes one of the caller's sessions.
func (s *Service) DeleteSession(ctx context.Context, userID, id string) error {
	if _, err := s.Session(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// QuickAnswers returns the canned question set for the chat screen.
func (s *Service) QuickAnswers(lang string) []QuickAnswer {
	if _, ok := knowledgeBase[lang]; !ok {
		lang = LangEnglish
	}
	kb := knowledgeBase[lang]
	ha := lang == LangHausa

	return []QuickAnswer{
		{ID: "prayer-times", Question: pick(ha, "Lokacin salla?", "Prayer times?"), Answer: kb.Prayer, Icon: "pray"},
		{ID: "donate", Question: pick(ha, "Yaya zan iya ba da sadaka?", "How can I donate?"), Answer: kb.Donation, Icon: "heart"},
		{ID: "emergency", Question: pick(ha, "Menene yakamata in yi a gaggawa?", "What should I do in an emergency?"), Answer: kb.Emergency, Icon: "alert"},
		{ID: "help", Question: pick(ha, "Kana iya taimakawa da?", "What can you help with?"), Answer: kb.Help, Icon: "help"},
	}
}

// Summary is the result of summarizing a block of text.
type Summary struct {
	OriginalLength int    `json:"originalLength"`
	Summary        string `json:"summary"`
	ReadTime       int    `json:"readTime"`
}

// Summarize produces a naive leading-words summary with an estimated read
// time at 200 words per minute.
func (s *Service) Summarize(text string) (Summary, error) {
	if len(text) < 100 {
		return Summary{}, ErrTextTooShort
	}
	words := strings.Fields(text)
	summary := strings.Join(words, " ")
	if len(words) > 50 {
		summary = strings.Join(words[:50], " ") + "..."
	}
	return Summary{
		OriginalLength: len(words),
		Summary:        summary,
		ReadTime:       (len(words) + 199) / 200,
	}, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func pick(ha bool, hausa, english string) string {
	if ha {
		return hausa
	}
	return english
}
