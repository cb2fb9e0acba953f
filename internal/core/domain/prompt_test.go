package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptSpec_Resolve(t *testing.T) {
	spec := PromptSpec{
		Name: "generate_script",
		Arguments: []PromptArgument{
			{Name: "task_description", Required: true},
			{Name: "product_version", Default: "2025 R1"},
		},
	}

	t.Run("fills defaults", func(t *testing.T) {
		got, err := spec.Resolve(map[string]string{"task_description": "mesh a part", "extra": "x"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"task_description": "mesh a part", "product_version": "2025 R1"}, got)
	})

	t.Run("keeps provided optional value", func(t *testing.T) {
		got, err := spec.Resolve(map[string]string{"task_description": "t", "product_version": "2024 R2"})
		require.NoError(t, err)
		assert.Equal(t, "2024 R2", got["product_version"])
	})

	t.Run("missing required argument", func(t *testing.T) {
		_, err := spec.Resolve(map[string]string{"product_version": "2024 R2"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("empty required argument", func(t *testing.T) {
		_, err := spec.Resolve(map[string]string{"task_description": ""})
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})
}
