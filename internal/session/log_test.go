package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAppend(t *testing.T) {
	t.Run("keeps append order", func(t *testing.T) {
		log := NewLog()
		log.Append(Turn{Author: "Ana", StudentMessage: "primera"})
		log.Append(Turn{Author: "Luis", StudentMessage: "segunda"})

		turns := log.Turns()
		require.Len(t, turns, 2)
		assert.Equal(t, "Ana", turns[0].Author)
		assert.Equal(t, "Luis", turns[1].Author)
	})

	t.Run("timestamps are monotonic non-decreasing", func(t *testing.T) {
		log := NewLog()
		base := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

		log.Append(Turn{Timestamp: base})
		log.Append(Turn{Timestamp: base.Add(time.Second)})
		// Wall clock stepping backwards gets clamped
		log.Append(Turn{Timestamp: base.Add(-time.Minute)})

		turns := log.Turns()
		require.Len(t, turns, 3)
		for i := 1; i < len(turns); i++ {
			assert.False(t, turns[i].Timestamp.Before(turns[i-1].Timestamp),
				"turn %d timestamp precedes turn %d", i, i-1)
		}
		assert.Equal(t, base.Add(time.Second), turns[2].Timestamp)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		log := NewLog()
		log.Append(Turn{Author: "Ana"})

		turns := log.Turns()
		turns[0].Author = "modified"

		assert.Equal(t, "Ana", log.Turns()[0].Author)
	})
}

func TestTranscript(t *testing.T) {
	t.Run("empty log", func(t *testing.T) {
		assert.Empty(t, Transcript(nil))
	})

	t.Run("frames user messages with the author", func(t *testing.T) {
		turns := []Turn{
			{Author: "Ana", StudentMessage: "la derivada es la pendiente", AIResponse: "¿Pendiente de qué, exactamente?"},
			{Author: "Luis", StudentMessage: "de la recta tangente", AIResponse: "Ahora lo entiendo, ¡gracias!"},
		}

		messages := Transcript(turns)
		require.Len(t, messages, 4)

		assert.Equal(t, RoleUser, messages[0].Role)
		assert.Equal(t, "Ana: la derivada es la pendiente", messages[0].Content)
		assert.Equal(t, RoleAssistant, messages[1].Role)
		assert.Equal(t, "¿Pendiente de qué, exactamente?", messages[1].Content)
		assert.Equal(t, RoleUser, messages[2].Role)
		assert.Equal(t, "Luis: de la recta tangente", messages[2].Content)
		assert.Equal(t, RoleAssistant, messages[3].Role)
	})
}
