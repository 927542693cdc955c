package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsSentinel(t *testing.T) {
	wrapped := Wrapf(ErrConfigNotFound, "config file not found at %s", "/tmp/x/onepager.yaml")

	assert.Contains(t, wrapped.Error(), "/tmp/x/onepager.yaml")
	assert.True(t, Is(wrapped, ErrConfigNotFound))
	assert.False(t, Is(wrapped, ErrMissingKey))
}

func TestWithHint(t *testing.T) {
	err := WithHint(Wrap(ErrMissingKey, "network_file"), "add network_file to onepager.yaml")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "add network_file to onepager.yaml", hints[0])
	assert.Equal(t, "add network_file to onepager.yaml", FlattenHints(err))
}

func TestIsConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"config not found", Wrap(ErrConfigNotFound, "x"), true},
		{"missing key", Wrap(ErrMissingKey, "x"), true},
		{"network not found", Wrap(ErrNetworkNotFound, "x"), true},
		{"invalid config", NewInvalidConfigError("map.zoom_start must be > 0, got %d", 0), true},
		{"unsupported format", Wrap(ErrUnsupportedFormat, "x"), false},
		{"plain", New("boom"), false},
		{"fmt wrapped", fmt.Errorf("outer: %w", ErrConfigNotFound), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConfigError(tt.err))
		})
	}
}

func TestNewInvalidConfigError(t *testing.T) {
	err := NewInvalidConfigError("output_dir cannot be empty")

	assert.True(t, Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "output_dir cannot be empty")
}
