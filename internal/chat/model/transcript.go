package model

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role      Role
	Content   string
	CreatedAt time.Time
}

// Transcript is the append-only conversation history of a single session
type Transcript struct {
	messages []Message
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

// AddUserMessage appends a message typed by the user
func (t *Transcript) AddUserMessage(content string) {
	t.AddMessage(Message{Role: RoleUser, Content: content})
}

// AddMessage appends msg, stamping it with the current time if unset
func (t *Transcript) AddMessage(msg Message) {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	t.messages = append(t.messages, msg)
}

// Messages returns a copy of the history in order
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Transcript) Len() int {
	return len(t.messages)
}
