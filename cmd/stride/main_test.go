package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/stride/internal/cli"
	"github.com/rshade/stride/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		assert.NotNil(t, root)
		assert.Equal(t, "stride", root.Use)
	})

	t.Run("run function exists", func(_ *testing.T) {
		_ = run
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error", err: nil, want: exitOK},
		{name: "generic error", err: errors.New("boom"), want: exitError},
		{name: "batch failures", err: cli.ErrBatchFailures, want: exitPartial},
		{name: "wrapped batch failures", err: fmt.Errorf("%w: 2 of 5", cli.ErrBatchFailures), want: exitPartial},
		{name: "joined", err: errors.Join(errors.New("outer"), cli.ErrBatchFailures), want: exitPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
