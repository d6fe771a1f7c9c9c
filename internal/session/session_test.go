package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourseSession(t *testing.T) {
	t.Run("valid setup", func(t *testing.T) {
		sess, err := NewCourseSession("AES519/1375", "Grupo A", []string{"Ana", "Luis"}, nil)
		require.NoError(t, err)
		require.NotNil(t, sess)

		assert.NotEqual(t, uuid.Nil, sess.ID)
		assert.Equal(t, "AES519/1375", sess.CourseCode)
		assert.Equal(t, "Grupo A", sess.GroupID)
		assert.Equal(t, []string{"Ana", "Luis"}, sess.Participants)
		assert.NotNil(t, sess.Log)
		assert.Equal(t, 0, sess.Log.Len())
	})

	t.Run("trims identity fields", func(t *testing.T) {
		sess, err := NewCourseSession("  AES519  ", " Grupo A ", []string{" Ana "}, nil)
		require.NoError(t, err)

		assert.Equal(t, "AES519", sess.CourseCode)
		assert.Equal(t, "Grupo A", sess.GroupID)
		assert.Equal(t, []string{"Ana"}, sess.Participants)
	})

	t.Run("drops blank participants but keeps duplicates", func(t *testing.T) {
		sess, err := NewCourseSession("AES519", "Grupo A", []string{"Ana", "", "  ", "Ana"}, nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"Ana", "Ana"}, sess.Participants)
	})

	t.Run("missing course code", func(t *testing.T) {
		_, err := NewCourseSession("  ", "Grupo A", []string{"Ana"}, nil)
		assert.Error(t, err)
	})

	t.Run("missing group ID", func(t *testing.T) {
		_, err := NewCourseSession("AES519", "", []string{"Ana"}, nil)
		assert.Error(t, err)
	})

	t.Run("no participants", func(t *testing.T) {
		_, err := NewCourseSession("AES519", "Grupo A", []string{" ", ""}, nil)
		assert.Error(t, err)
	})
}

func TestHasParticipant(t *testing.T) {
	sess, err := NewCourseSession("AES519", "Grupo A", []string{"Ana", "Luis"}, nil)
	require.NoError(t, err)

	assert.True(t, sess.HasParticipant("Ana"))
	assert.True(t, sess.HasParticipant("Luis"))
	assert.False(t, sess.HasParticipant("ana"))
	assert.False(t, sess.HasParticipant("Pedro"))
	assert.False(t, sess.HasParticipant(""))
}

func TestParseParticipants(t *testing.T) {
	tests := []struct {
		name     string
		block    string
		expected []string
	}{
		{
			name:     "one per line",
			block:    "Ana\nLuis",
			expected: []string{"Ana", "Luis"},
		},
		{
			name:     "trims and drops blank lines",
			block:    "  Ana  \n\n\tLuis\t\n   \n",
			expected: []string{"Ana", "Luis"},
		},
		{
			name:     "windows line endings",
			block:    "Ana\r\nLuis\r\n",
			expected: []string{"Ana", "Luis"},
		},
		{
			name:     "empty block",
			block:    "",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, ParseParticipants(test.block))
		})
	}
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	sess, err := NewCourseSession("AES519", "Grupo A", []string{"Ana"}, nil)
	require.NoError(t, err)

	t.Run("get before add", func(t *testing.T) {
		_, err := registry.Get(sess.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("add and get", func(t *testing.T) {
		registry.Add(sess)
		assert.Equal(t, 1, registry.Len())

		got, err := registry.Get(sess.ID)
		require.NoError(t, err)
		assert.Same(t, sess, got)
	})

	t.Run("remove", func(t *testing.T) {
		got, err := registry.Remove(sess.ID)
		require.NoError(t, err)
		assert.Same(t, sess, got)
		assert.Equal(t, 0, registry.Len())

		_, err = registry.Remove(sess.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}
