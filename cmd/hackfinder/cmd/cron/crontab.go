package cron

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/agentstation/hackfinder/pkg/constants"
	"github.com/agentstation/hackfinder/pkg/errors"
)

// LogFile is the log file scheduled runs append to, relative to the data directory.
const LogFile = "hackfinder.log"

// Crontab reads and replaces the current user's crontab.
type Crontab interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, content string) error
}

// SystemCrontab drives the crontab(1) binary.
type SystemCrontab struct {
	// Bin is the crontab executable, "crontab" when empty.
	Bin string
}

var _ Crontab = (*SystemCrontab)(nil)

func (c *SystemCrontab) bin() string {
	if c.Bin == "" {
		return "crontab"
	}
	return c.Bin
}

// Read returns the installed crontab. A user without a crontab yields "".
func (c *SystemCrontab) Read(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, c.bin(), "-l").Output() //nolint:gosec // binary from configuration
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && strings.Contains(string(exitErr.Stderr), "no crontab") {
			return "", nil
		}
		stderr := ""
		if exitErr != nil {
			stderr = string(exitErr.Stderr)
		}
		return "", errors.NewProcessError("read crontab", c.bin()+" -l", stderr, err)
	}
	return string(out), nil
}

// Write replaces the crontab with content.
func (c *SystemCrontab) Write(ctx context.Context, content string) error {
	cmd := exec.CommandContext(ctx, c.bin(), "-") //nolint:gosec // binary from configuration
	cmd.Stdin = strings.NewReader(content)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.NewProcessError("install crontab", c.bin()+" -", string(out), err)
	}
	return nil
}

// Entry returns the crontab line running a daily update in dataDir.
func Entry(executable, dataDir string) string {
	return fmt.Sprintf("%s cd %s && LOG_OUTPUT=%s %s update",
		constants.DailySchedule, shellQuote(dataDir), LogFile, shellQuote(executable))
}

// Installed reports whether crontab already contains entry.
func Installed(crontab, entry string) bool {
	for _, line := range strings.Split(crontab, "\n") {
		if strings.TrimSpace(line) == entry {
			return true
		}
	}
	return false
}

// Install adds entry to the crontab unless it is already present. It
// reports whether the crontab was changed.
func Install(ctx context.Context, tab Crontab, entry string) (bool, error) {
	current, err := tab.Read(ctx)
	if err != nil {
		return false, err
	}
	if Installed(current, entry) {
		return false, nil
	}

	var b strings.Builder
	b.WriteString(current)
	if current != "" && !strings.HasSuffix(current, "\n") {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s\n%s\n", constants.CronComment, entry)

	if err := tab.Write(ctx, b.String()); err != nil {
		return false, err
	}
	return true, nil
}

// shellQuote single-quotes s for /bin/sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
