package status

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-alfasim-sdk/pkg/validation"
)

func TestMessages(t *testing.T) {
	for name, ctor := range map[string]func(string, string) (Message, error){
		"error":   NewErrorMessage,
		"warning": NewWarningMessage,
	} {
		t.Run(name, func(t *testing.T) {
			out, err := ctor("Test1", "Message From test")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.ModelName() != "Test1" || out.Message() != "Message From test" {
				t.Fatalf("unexpected message %v", out)
			}

			_, err = ctor("", "Message From test")
			if !errors.Is(err, validation.ErrEmpty) || !strings.Contains(err.Error(), `The field "model_name" cannot be empty`) {
				t.Fatalf("expected empty model_name error, got %v", err)
			}

			_, err = ctor("Test", " ")
			if !strings.Contains(err.Error(), `The field "message" cannot be empty`) {
				t.Fatalf("expected empty message error, got %v", err)
			}
		})
	}
}

func TestHasErrorsAndFilter(t *testing.T) {
	warn, _ := NewWarningMessage("M", "careful")
	fail, _ := NewErrorMessage("M", "broken")

	if HasErrors([]Message{warn}) {
		t.Fatalf("warnings alone are not errors")
	}
	msgs := []Message{warn, fail, warn}
	if !HasErrors(msgs) {
		t.Fatalf("expected errors")
	}
	if got := Filter(msgs, SeverityWarning); len(got) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(got))
	}
	if fail.String() != "error: M: broken" {
		t.Fatalf("unexpected string %q", fail.String())
	}
}
