// Package store loads and saves the persisted hackathon state file.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/agentstation/hackfinder/pkg/constants"
	"github.com/agentstation/hackfinder/pkg/errors"
	"github.com/agentstation/hackfinder/pkg/hackathons"
	"github.com/agentstation/hackfinder/pkg/logging"
)

// Store reads and writes one state file.
type Store struct {
	path string

	// raw holds the bytes of a state file that could not be fully decoded.
	// They are copied to the backup path before the next save.
	raw []byte
}

// Snapshot is the decoded content of a state file.
type Snapshot struct {
	Records []hackathons.Hackathon

	// Diagnostics lists PersistenceErrors for content that could not be decoded.
	Diagnostics []error
}

// New returns a store for the state file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// BackupPath returns where an undecodable state file is preserved.
func (s *Store) BackupPath() string {
	return s.path + constants.BackupSuffix
}

// Load reads the state file. A missing file yields an empty snapshot. A
// malformed file yields an empty snapshot with a PersistenceError diagnostic;
// undecodable records are skipped individually. In both cases the original
// bytes are backed up by the next Save. Only read failures are returned as errors.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	logger := logging.FromContext(ctx)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info().Str("path", s.path).Msg("No state file found, starting empty")
		return &Snapshot{}, nil
	}
	if err != nil {
		return nil, errors.WrapIO("read", s.path, err)
	}

	snapshot := &Snapshot{}
	records, diagnostics := decode(s.path, data)
	snapshot.Records = records
	snapshot.Diagnostics = diagnostics
	if len(diagnostics) > 0 {
		s.raw = data
		for _, diag := range diagnostics {
			logger.Warn().Err(diag).Str("backup", s.BackupPath()).Msg("State file content could not be decoded")
		}
	}

	logger.Debug().
		Str("path", s.path).
		Int("records", len(records)).
		Msg("Loaded state file")
	return snapshot, nil
}

// decode parses a JSON array of records, skipping records that do not decode.
func decode(path string, data []byte) ([]hackathons.Hackathon, []error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, []error{errors.NewPersistenceError(path, "malformed JSON, starting from empty state", err)}
	}

	records := make([]hackathons.Hackathon, 0, len(raws))
	var diagnostics []error
	for i, raw := range raws {
		var h hackathons.Hackathon
		if err := json.Unmarshal(raw, &h); err != nil {
			diagnostics = append(diagnostics, errors.NewPersistenceError(path, fmt.Sprintf("record %d skipped", i), err))
			continue
		}
		records = append(records, h)
	}
	return records, diagnostics
}

// Encode renders records as the state file content: sorted, two-space
// indented JSON with a trailing newline.
func Encode(records []hackathons.Hackathon) ([]byte, error) {
	sorted := slices.Clone(records)
	hackathons.Sort(sorted)
	if sorted == nil {
		sorted = []hackathons.Hackathon{}
	}

	data, err := json.MarshalIndent(sorted, "", "  ")
	if err != nil {
		return nil, errors.WrapParse("json", constants.StateFile, err)
	}
	return append(data, '\n'), nil
}

// Save writes records atomically: the content goes to a temporary file in the
// same directory which is then renamed over the state file.
func (s *Store) Save(ctx context.Context, records []hackathons.Hackathon) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}

	if s.raw != nil {
		if err := WriteFileAtomic(s.BackupPath(), s.raw); err != nil {
			return err
		}
		logging.FromContext(ctx).Warn().Str("path", s.BackupPath()).Msg("Backed up undecodable state file")
		s.raw = nil
	}

	if err := WriteFileAtomic(s.path, data); err != nil {
		return err
	}

	logging.FromContext(ctx).Info().
		Str("path", s.path).
		Int("records", len(records)).
		Msg("Saved state file")
	return nil
}

// WriteFileAtomic writes data to path through a temporary file and rename,
// creating the parent directory when needed.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return errors.WrapIO("write", path, err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("write", path, err)
	}
	if err := os.Chmod(tempPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("chmod", path, err)
	}

	// Atomically move temp file to final location
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("move", path, err)
	}
	return nil
}
