package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/teranos/gridmap/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"config not found", errors.Wrapf(errors.ErrConfigNotFound, "config file not found: %s", "config/x/onepager.yaml"), exitConfig},
		{"missing key", errors.Wrap(errors.ErrMissingKey, "'network_file' key missing"), exitConfig},
		{"network not found", errors.Wrap(errors.ErrNetworkNotFound, "network file not found"), exitConfig},
		{"invalid settings", errors.NewInvalidConfigError("map.tiles must be known"), exitConfig},
		{"unsupported format", errors.Wrap(errors.ErrUnsupportedFormat, "cannot read model.h5"), exitFailure},
		{"other", errors.New("disk full"), exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
