package tools

import "fmt"

// UnknownToolError is returned for names outside the catalog.
type UnknownToolError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// InvalidArgumentError reports a missing or malformed argument.
type InvalidArgumentError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Field, e.Message)
}

func required(field string) error {
	return &InvalidArgumentError{Field: field, Message: "is required"}
}
