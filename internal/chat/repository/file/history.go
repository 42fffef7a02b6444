package file

import (
	"bufio"
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"book-chatbot/internal/chat"
	"book-chatbot/internal/chat/repository"
	"book-chatbot/pkg/log"
)

const (
	sessionsDir        = "sessions"
	conversationPrefix = "conversation_"
	conversationExt    = ".txt"
	sessionLogPrefix   = "session_"
	sessionLogExt      = ".html"
	userLinePrefix     = "You:"

	userColor = "#4c63cb"
	botColor  = "lightgrey"
)

type implHistoryRepository struct {
	dir string
	l   log.Logger
	mu  sync.Mutex
}

var _ repository.HistoryRepository = (*implHistoryRepository)(nil)

// New creates a file-backed history store rooted at dir.
// Saved conversations live in dir, live session logs in dir/sessions.
func New(dir string, l log.Logger) (*implHistoryRepository, error) {
	if err := os.MkdirAll(filepath.Join(dir, sessionsDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure history dir: %w", err)
	}
	return &implHistoryRepository{dir: dir, l: l}, nil
}

// AppendTurns appends styled HTML bubbles to the session's live log in a single write.
func (r *implHistoryRepository) AppendTurns(ctx context.Context, opt repository.AppendTurnsOptions) error {
	path, err := r.sessionLogPath(opt.SessionID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, t := range opt.Turns {
		b.WriteString(renderBubble(t))
	}
	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("append session log: %w", err)
	}
	return nil
}

// ResetLog truncates the session's live log.
func (r *implHistoryRepository) ResetLog(ctx context.Context, sessionID string) error {
	path, err := r.sessionLogPath(sessionID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.WriteFile(path, nil, 0o644); err != nil {
		return fmt.Errorf("reset session log: %w", err)
	}
	return nil
}

// SaveConversation rewrites the named conversation file with the full transcript.
func (r *implHistoryRepository) SaveConversation(ctx context.Context, opt repository.SaveConversationOptions) error {
	path, err := r.conversationPath(opt.Name)
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, t := range opt.Turns {
		if t.Role == chat.RoleUser {
			b.WriteString(userLinePrefix + " " + t.Text + "\n")
			continue
		}
		b.WriteString(t.Text)
		if !strings.HasSuffix(t.Text, "\n") {
			b.WriteString("\n")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write conversation: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace conversation: %w", err)
	}
	return nil
}

// LoadConversation reads a saved conversation. Lines prefixed "You:" are user turns;
// consecutive other lines form one bot turn.
func (r *implHistoryRepository) LoadConversation(ctx context.Context, name string) (chat.Conversation, error) {
	path, err := r.conversationPath(name)
	if err != nil {
		return chat.Conversation{}, chat.ErrConversationNotFound
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return chat.Conversation{}, chat.ErrConversationNotFound
	}
	if err != nil {
		return chat.Conversation{}, fmt.Errorf("open conversation: %w", err)
	}
	defer f.Close()

	conv := chat.Conversation{Name: name}
	var bot []string
	flush := func() {
		if len(bot) > 0 {
			conv.Turns = append(conv.Turns, chat.Turn{Role: chat.RoleBot, Text: strings.Join(bot, "\n")})
			bot = nil
		}
	}

	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for s.Scan() {
		line := s.Text()
		if strings.HasPrefix(line, userLinePrefix) {
			flush()
			text := strings.TrimSpace(strings.TrimPrefix(line, userLinePrefix))
			conv.Turns = append(conv.Turns, chat.Turn{Role: chat.RoleUser, Text: text})
			continue
		}
		if strings.TrimSpace(line) == "" && len(bot) == 0 {
			continue
		}
		bot = append(bot, line)
	}
	flush()
	if err := s.Err(); err != nil {
		return chat.Conversation{}, fmt.Errorf("scan conversation: %w", err)
	}
	return conv, nil
}

// ListConversations returns saved conversations, newest first.
func (r *implHistoryRepository) ListConversations(ctx context.Context) ([]chat.ConversationInfo, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read history dir: %w", err)
	}

	out := make([]chat.ConversationInfo, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, conversationPrefix) || !strings.HasSuffix(name, conversationExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			r.l.Warnf(ctx, "chat.repository.file.ListConversations: stat %s: %v", name, err)
			continue
		}
		out = append(out, chat.ConversationInfo{Name: name, ModTime: info.ModTime(), Size: info.Size()})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ModTime.Equal(out[j].ModTime) {
			return out[i].Name > out[j].Name
		}
		return out[i].ModTime.After(out[j].ModTime)
	})
	return out, nil
}

func (r *implHistoryRepository) conversationPath(name string) (string, error) {
	if !validFileName(name) || !strings.HasPrefix(name, conversationPrefix) || !strings.HasSuffix(name, conversationExt) {
		return "", fmt.Errorf("%w: %q", repository.ErrInvalidConversationName, name)
	}
	return filepath.Join(r.dir, name), nil
}

func (r *implHistoryRepository) sessionLogPath(id string) (string, error) {
	if id == "" || !validFileName(id) {
		return "", fmt.Errorf("%w: %q", repository.ErrInvalidSessionID, id)
	}
	return filepath.Join(r.dir, sessionsDir, sessionLogPrefix+id+sessionLogExt), nil
}

func validFileName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

// renderBubble styles a turn the way the chat page shows it. Bot text is already HTML.
func renderBubble(t chat.Turn) string {
	if t.Role == chat.RoleUser {
		return "<div style='display:flex; align-items:center;'>" +
			"<span style='margin-right:5px;'>&#129489;</span>" +
			"<div style='background-color:" + userColor + "; color:white; padding:10px; margin-bottom:15px; border-radius:15px;'> You: " +
			html.EscapeString(t.Text) + "</div></div>\n"
	}
	return "<div style='display:flex; align-items:flex-start;'>" +
		"<span style='margin-right:5px;'>&#129302;</span>" +
		"<div style='background-color:" + botColor + "; padding:10px; margin-bottom:12px; border-radius:15px;'> " +
		strings.ReplaceAll(t.Text, "\n", "<br>") + "</div></div>\n"
}
