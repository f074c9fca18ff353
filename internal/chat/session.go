package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/acai-travel/lights-assistant/internal/chat/model"
	"github.com/google/uuid"
)

const (
	userPrompt      = "User > "
	assistantPrefix = "Assistant > "

	// maxLineSize bounds a single line of user input
	maxLineSize = 1 << 20
)

// Replier produces the assistant's answer to a transcript
type Replier interface {
	Reply(ctx context.Context, transcript *model.Transcript) ([]model.Message, error)
}

// Session is an interactive chat between a console user and the assistant
type Session struct {
	ID         string
	in         *bufio.Scanner
	out        io.Writer
	assist     Replier
	transcript *model.Transcript
}

func NewSession(in io.Reader, out io.Writer, assist Replier) *Session {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &Session{
		ID:         uuid.NewString(),
		in:         scanner,
		out:        out,
		assist:     assist,
		transcript: model.NewTranscript(),
	}
}

// Transcript returns the conversation so far
func (s *Session) Transcript() *model.Transcript {
	return s.transcript
}

// Run reads user lines until an empty line or end of input. Any error from
// the assistant ends the session.
func (s *Session) Run(ctx context.Context) error {
	log := slog.With("session_id", s.ID)
	log.InfoContext(ctx, "Starting chat session")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := fmt.Fprint(s.out, userPrompt); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}

		line, ok, err := s.readLine(ctx)
		if err != nil {
			return err
		}
		if !ok || line == "" {
			log.InfoContext(ctx, "Chat session ended", "messages", s.transcript.Len())
			return nil
		}

		s.transcript.AddUserMessage(line)

		replies, err := s.assist.Reply(ctx, s.transcript)
		if err != nil {
			return fmt.Errorf("failed to generate reply: %w", err)
		}

		for _, m := range replies {
			if m.Role != model.RoleAssistant || strings.TrimSpace(m.Content) == "" {
				log.DebugContext(ctx, "Skipping reply message", "role", m.Role)
				continue
			}

			if _, err := fmt.Fprintln(s.out, assistantPrefix+m.Content); err != nil {
				return fmt.Errorf("failed to write reply: %w", err)
			}
			s.transcript.AddMessage(m)
		}
	}
}

type lineResult struct {
	line string
	ok   bool
	err  error
}

// readLine waits for the next input line or for ctx to be done, whichever
// comes first
func (s *Session) readLine(ctx context.Context) (string, bool, error) {
	ch := make(chan lineResult, 1)
	go func() {
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				ch <- lineResult{err: fmt.Errorf("failed to read input: %w", err)}
				return
			}
			ch <- lineResult{}
			return
		}
		ch <- lineResult{line: strings.TrimRight(s.in.Text(), "\r"), ok: true}
	}()

	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case r := <-ch:
		return r.line, r.ok, r.err
	}
}
