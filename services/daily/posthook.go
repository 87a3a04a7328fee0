package daily

import (
	"context"
	"io"
	"os"
	"os/exec"
	"slices"
)

// PostHook is an external tool run after the stub files land, the slug
// of the day's challenge is appended to its arguments. a failing hook
// never fails the run.
type PostHook struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
	Silent  bool     `json:"silent"`
}

func (h PostHook) Run(ctx context.Context, titleSlug string) error {
	if h.Command == "" {
		return nil
	}

	args := append(slices.Clone(h.Args), titleSlug)
	cmd := exec.CommandContext(ctx, h.Command, args...)
	if h.Silent {
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}
