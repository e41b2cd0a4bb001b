package notify

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/ultradian/internal/apperr"
	"github.com/ayoisaiah/ultradian/internal/phase"
)

var errInvalidCommand = &apperr.Error{
	Message: "unable to parse the session command",
}

// Command runs a user supplied command on every phase change. The new
// phase is exposed through the ULTRADIAN_PHASE, ULTRADIAN_CYCLE and
// ULTRADIAN_REMAINING environment variables.
type Command struct {
	Cmd string
}

func (c *Command) Notify(ctx context.Context, s phase.State) error {
	if c.Cmd == "" {
		return nil
	}

	args, err := shellquote.Split(c.Cmd)
	if err != nil {
		return errInvalidCommand.Wrap(err)
	}

	if len(args) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Env = append(os.Environ(),
		"ULTRADIAN_PHASE="+string(s.Phase),
		"ULTRADIAN_CYCLE="+strconv.Itoa(s.Cycle),
		"ULTRADIAN_REMAINING="+strconv.Itoa(s.Remaining),
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("session command failed: %w: %s", err, out)
	}

	return nil
}
