package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/imfe-lab/aulalab/internal/index"
	"github.com/imfe-lab/aulalab/internal/session"
)

var (
	// ErrNotReady indicates the session's document index is not available yet
	ErrNotReady = errors.New("session index not ready")

	// ErrGenerationFailed indicates the reply capability call failed
	ErrGenerationFailed = errors.New("reply generation failed")

	// ErrInvalidAuthor indicates the author is not a session participant
	ErrInvalidAuthor = errors.New("author is not a session participant")

	// ErrEmptyInput indicates a blank explanation
	ErrEmptyInput = errors.New("explanation text is empty")
)

// passageSeparator keeps passage boundaries unambiguous in the context block
const passageSeparator = "\n\n---\n\n"

// Mirror receives a best-effort copy of each recorded turn. Implementations
// must never block turn handling on remote faults; failures are theirs to
// report.
type Mirror interface {
	Record(ctx context.Context, turn session.Turn)
}

// Controller orchestrates one explanation turn against the virtual student
type Controller struct {
	generator Generator
	policy    Policy
	tuning    Tuning
	mirror    Mirror // optional
}

// NewController creates a dialogue controller. mirror may be nil when no
// durable store is configured.
func NewController(generator Generator, policy Policy, tuning Tuning, mirror Mirror) *Controller {
	return &Controller{
		generator: generator,
		policy:    policy,
		tuning:    tuning,
		mirror:    mirror,
	}
}

// HandleTurn runs one turn: validates the input, retrieves the most similar
// passages, generates the persona reply, and appends exactly one Turn to the
// session log on success. Turns within a session are serialized; failures
// leave the log untouched.
func (c *Controller) HandleTurn(ctx context.Context, sess *session.CourseSession, author, text string) (session.Turn, error) {
	if !sess.HasParticipant(author) {
		return session.Turn{}, fmt.Errorf("%w: %q", ErrInvalidAuthor, author)
	}
	if strings.TrimSpace(text) == "" {
		return session.Turn{}, ErrEmptyInput
	}
	if sess.Index == nil {
		return session.Turn{}, ErrNotReady
	}

	sess.Lock()
	defer sess.Unlock()

	passages, err := sess.Index.Search(ctx, text, c.tuning.TopK)
	if err != nil {
		return session.Turn{}, fmt.Errorf("%w: retrieving passages: %v", ErrGenerationFailed, err)
	}

	system := c.policy.SystemPrompt(sess.CourseCode, sess.GroupID)
	user := composeUserDirective(passages, author, text)

	reply, err := c.generator.Generate(ctx, system, user)
	if err != nil {
		return session.Turn{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	turn := session.Turn{
		Timestamp:      time.Now(),
		CourseCode:     sess.CourseCode,
		GroupID:        sess.GroupID,
		Author:         author,
		StudentMessage: text,
		AIResponse:     reply,
		// Character count of the explanation, per the research-log contract
		ResponseLength: utf8.RuneCountInString(text),
	}

	sess.Log.Append(turn)

	if c.mirror != nil {
		c.mirror.Record(ctx, turn)
	}

	return turn, nil
}

// composeUserDirective frames the retrieved context block and the attributed
// explanation for the generation capability. Passages appear in retrieval
// order with an explicit separator; nothing is summarized or truncated.
func composeUserDirective(passages []index.Passage, author, text string) string {
	blocks := make([]string, len(passages))
	for i, p := range passages {
		blocks[i] = p.Text
	}

	var b strings.Builder
	b.WriteString("CONTEXTO DEL MATERIAL DEL CURSO:\n")
	b.WriteString(strings.Join(blocks, passageSeparator))
	b.WriteString("\n\nEXPLICACIÓN DEL GRUPO:\n")
	b.WriteString(author)
	b.WriteString(": ")
	b.WriteString(text)
	return b.String()
}
