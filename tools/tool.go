// Package tools provides the tool interface and the tools offered to the
// shopping agent.
package tools

import "context"

// Tool defines the interface that all tools must implement.
type Tool interface {
	// Name returns the unique identifier the model calls the tool by.
	Name() string

	// Description returns a human-readable description for the model.
	Description() string

	// Parameters returns the JSON schema for the tool's arguments.
	Parameters() map[string]any

	// Execute runs the tool and returns the text handed back to the model.
	// The context should be used for cancellation and timeouts.
	Execute(ctx context.Context, args map[string]any) (string, error)
}
