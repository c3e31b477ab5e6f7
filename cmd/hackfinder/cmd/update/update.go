package update

import (
	"context"
	"io"

	"github.com/agentstation/hackfinder/internal/cmd/application"
	"github.com/agentstation/hackfinder/pkg/constants"
	"github.com/agentstation/hackfinder/pkg/logging"
)

// Run performs one update cycle and prints its report to w.
func Run(ctx context.Context, app application.Application, w io.Writer, flags *Flags) error {
	ctx = logging.WithLogger(ctx, app.Logger())
	ctx, cancel := context.WithTimeout(ctx, constants.UpdateTimeout)
	defer cancel()

	finder, err := app.Finder(flags.Options()...)
	if err != nil {
		return err
	}

	result, err := finder.Update(ctx)
	if err != nil {
		return err
	}

	return Print(w, app.OutputFormat(), result)
}
