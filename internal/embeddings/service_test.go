package embeddings

import (
	"context"
	"testing"

	"github.com/openai/openai-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imfe-lab/aulalab/pkg/utils"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := ConfigFromEnv(utils.NewConfig(nil))
		assert.Equal(t, DefaultModel, config.Model)
	})

	t.Run("model override", func(t *testing.T) {
		config := ConfigFromEnv(utils.NewConfig(map[string]string{
			"EMBEDDING_MODEL": "text-embedding-3-large",
		}))
		assert.Equal(t, "text-embedding-3-large", config.Model)
	})
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Model: DefaultModel}.Validate())
	assert.ErrorIs(t, Config{}.Validate(), ErrInvalidConfig)
}

func TestNewService(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		service, err := NewService(Config{Model: DefaultModel}, openai.Client{})
		require.NoError(t, err)
		assert.NotNil(t, service)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := NewService(Config{}, openai.Client{})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestEmbedEmptyInput(t *testing.T) {
	service, err := NewService(Config{Model: DefaultModel}, openai.Client{})
	require.NoError(t, err)

	t.Run("no documents", func(t *testing.T) {
		_, err := service.EmbedDocuments(context.Background(), nil)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("empty query", func(t *testing.T) {
		_, err := service.EmbedQuery(context.Background(), "")
		assert.ErrorIs(t, err, ErrEmptyInput)
	})
}

func TestToFloat32(t *testing.T) {
	assert.Equal(t, []float32{0.5, -1, 2}, toFloat32([]float64{0.5, -1, 2}))
	assert.Empty(t, toFloat32(nil))
}
