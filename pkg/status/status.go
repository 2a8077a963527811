// Package status defines the messages a plugin reports to the host GUI
// through the alfasim_get_status hook.
package status

import (
	"fmt"

	"github.com/goliatone/go-alfasim-sdk/pkg/simcontext"
	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
)

// Severity distinguishes blocking errors from warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Message is a status entry attached to a plugin model.
type Message struct {
	severity  Severity
	modelName string
	message   string
}

// NewErrorMessage builds a message that blocks the simulation.
func NewErrorMessage(modelName, message string) (Message, error) {
	return newMessage(SeverityError, modelName, message)
}

// NewWarningMessage builds a non-blocking message.
func NewWarningMessage(modelName, message string) (Message, error) {
	return newMessage(SeverityWarning, modelName, message)
}

func newMessage(severity Severity, modelName, message string) (Message, error) {
	err := validation.Run(
		validation.NonEmptyString("model_name", modelName),
		validation.NonEmptyString("message", message),
	)
	if err != nil {
		return Message{}, fmt.Errorf("status: %s message: %w", severity, err)
	}
	return Message{severity: severity, modelName: modelName, message: message}, nil
}

func (m Message) Severity() Severity { return m.severity }
func (m Message) ModelName() string  { return m.modelName }
func (m Message) Message() string    { return m.message }
func (m Message) IsError() bool      { return m.severity == SeverityError }

func (m Message) String() string {
	return fmt.Sprintf("%s: %s: %s", m.severity, m.modelName, m.message)
}

// Func computes the status of a plugin from the host context.
type Func func(ctx simcontext.Context) []Message

// HasErrors reports whether any message is an error.
func HasErrors(messages []Message) bool {
	for _, m := range messages {
		if m.IsError() {
			return true
		}
	}
	return false
}

// Filter returns the messages with the given severity, keeping their order.
func Filter(messages []Message, severity Severity) []Message {
	var out []Message
	for _, m := range messages {
		if m.severity == severity {
			out = append(out, m)
		}
	}
	return out
}
