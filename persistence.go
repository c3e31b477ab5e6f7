package hackfinder

import (
	"bytes"
	"context"
	"io/fs"
	"os"

	"github.com/agentstation/hackfinder/internal/store"
	"github.com/agentstation/hackfinder/pkg/errors"
	"github.com/agentstation/hackfinder/pkg/logging"
	"github.com/agentstation/hackfinder/pkg/reconciler"
)

// Outputs are the documents rendered by an update run.
type Outputs struct {
	Readme  []byte
	Archive []byte
}

// write saves the state file and the documents. Documents whose content is
// unchanged are not rewritten.
func (f *finder) write(ctx context.Context, result *reconciler.Result, outputs Outputs) error {
	if err := f.store.Save(ctx, result.State); err != nil {
		return err
	}

	if outputs.Readme != nil {
		if err := writeIfChanged(ctx, f.options.path(f.options.readmeFile), outputs.Readme); err != nil {
			return err
		}
	}
	return writeIfChanged(ctx, f.options.path(f.options.archiveFile), outputs.Archive)
}

func writeIfChanged(ctx context.Context, path string, data []byte) error {
	existing, err := readOptional(path)
	if err != nil {
		return err
	}
	if existing != nil && bytes.Equal(existing, data) {
		logging.FromContext(ctx).Debug().Str("path", path).Msg("Unchanged, not rewritten")
		return nil
	}

	if err := store.WriteFileAtomic(path, data); err != nil {
		return err
	}
	logging.FromContext(ctx).Info().Str("path", path).Int("bytes", len(data)).Msg("Wrote document")
	return nil
}

// readOptional returns the content of path, or nil when it does not exist.
func readOptional(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // paths come from options
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return data, nil
}
