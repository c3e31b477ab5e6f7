// Package application provides the application interface for hackfinder commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            finder, err := app.Finder()
//	            if err != nil {
//	                return err
//	            }
//	            // ... use finder
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    FinderFunc: func(opts ...hackfinder.Option) (hackfinder.Finder, error) {
//	        return hackfinder.New(append([]hackfinder.Option{hackfinder.WithDataDir(dir)}, opts...)...)
//	    },
//	}
//	cmd := list.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/hackfinder"
)

// Application provides the application interface that commands need.
// The App struct from cmd/hackfinder/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Finder returns a finder configured from the application configuration.
	// When called without options, returns the default cached instance.
	// When called with options, creates a new instance with the options
	// applied after the configured ones (no caching).
	Finder(opts ...hackfinder.Option) (hackfinder.Finder, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, wide, json, yaml).
	OutputFormat() string

	// DataDir returns the directory holding the state file and documents.
	DataDir() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
