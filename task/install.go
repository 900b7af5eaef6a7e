package task

import (
	"context"
	"fmt"

	"github.com/aexvir/binstall"
)

// install delegates the actual package installation to the now-present
// installer binary. Invoked exactly once and waited on synchronously;
// success is solely "process exited zero", the output is not parsed.
func (t *Task) install(ctx context.Context) error {
	args := append([]string{"binstall", "-y"}, t.packages...)

	result, err := binstall.Run(ctx, t.cfg.Cargo, binstall.WithArgs(args...))
	if err != nil {
		return binstall.NewStageError(
			binstall.ErrInstallCommand,
			"install",
			fmt.Errorf("exit code %d", result.ExitCode),
		)
	}

	return nil
}
