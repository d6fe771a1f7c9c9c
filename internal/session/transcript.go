package session

import "fmt"

// Message roles in the display transcript
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one display entry in a session transcript
type Message struct {
	Role    string
	Content string
}

// Transcript derives the ordered display messages from recorded turns:
// each turn yields the attributed explanation followed by the virtual
// student's reply.
func Transcript(turns []Turn) []Message {
	messages := make([]Message, 0, 2*len(turns))
	for _, t := range turns {
		messages = append(messages,
			Message{Role: RoleUser, Content: fmt.Sprintf("%s: %s", t.Author, t.StudentMessage)},
			Message{Role: RoleAssistant, Content: t.AIResponse},
		)
	}
	return messages
}
