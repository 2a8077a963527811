package hooks

import (
	"fmt"
)

// Status is a return code of the native API and of hooks.
type Status int

const (
	ReferenceNotSet        Status = -8
	UnknownReferenceType   Status = -7
	OutOfBounds            Status = -6
	UnknownContext         Status = -5
	NotAvailableData       Status = -4
	BufferSizeInsufficient Status = -3
	UndefinedData          Status = -2
	NotImplemented         Status = -1
	OK                     Status = 0
)

var statusNames = map[Status]string{
	ReferenceNotSet:        "REFERENCE_NOT_SET",
	UnknownReferenceType:   "UNKNOWN_REFERENCE_TYPE",
	OutOfBounds:            "OUT_OF_BOUNDS",
	UnknownContext:         "UNKNOWN_CONTEXT",
	NotAvailableData:       "NOT_AVAILABLE_DATA",
	BufferSizeInsufficient: "BUFFER_SIZE_INSUFFICIENT",
	UndefinedData:          "UNDEFINED_DATA",
	NotImplemented:         "NOT_IMPLEMENTED",
	OK:                     "OK",
}

var statusDescriptions = map[Status]string{
	ReferenceNotSet:        "some reference from input data was not set",
	UnknownReferenceType:   "reference type is unknown",
	OutOfBounds:            "index out of array bounds",
	UnknownContext:         "the context is unknown",
	NotAvailableData:       "data from the simulator is not available",
	BufferSizeInsufficient: "buffer size is insufficient",
	UndefinedData:          "plugin internal data is undefined",
	NotImplemented:         "a feature is not implemented in an API function",
	OK:                     "everything was fine",
}

// Statuses lists the codes from REFERENCE_NOT_SET to OK.
func Statuses() []Status {
	out := make([]Status, 0, len(statusNames))
	for code := ReferenceNotSet; code <= OK; code++ {
		out = append(out, code)
	}
	return out
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(s))
}

// Description explains the code.
func (s Status) Description() string {
	if text, ok := statusDescriptions[s]; ok {
		return text
	}
	return "unknown status code"
}

// StatusError is a non-OK code. errors.Is matches another StatusError with
// the same code, so the exported Err values work as sentinels.
type StatusError struct {
	Code Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hooks: %s (%d): %s", e.Code, int(e.Code), e.Code.Description())
}

func (e *StatusError) Is(target error) bool {
	t, ok := target.(*StatusError)
	return ok && t.Code == e.Code
}

var (
	ErrReferenceNotSet        = &StatusError{Code: ReferenceNotSet}
	ErrUnknownReferenceType   = &StatusError{Code: UnknownReferenceType}
	ErrOutOfBounds            = &StatusError{Code: OutOfBounds}
	ErrUnknownContext         = &StatusError{Code: UnknownContext}
	ErrNotAvailableData       = &StatusError{Code: NotAvailableData}
	ErrBufferSizeInsufficient = &StatusError{Code: BufferSizeInsufficient}
	ErrUndefinedData          = &StatusError{Code: UndefinedData}
	ErrNotImplemented         = &StatusError{Code: NotImplemented}
)

// CheckStatus converts a returned code into an error. OK yields nil.
func CheckStatus(code int) error {
	if Status(code) == OK {
		return nil
	}
	return &StatusError{Code: Status(code)}
}

// LoadErrorCode is returned when the plugin opens the native API library.
type LoadErrorCode int

const (
	SDKDLLPathTooLong   LoadErrorCode = -2
	SDKAlreadyOpenError LoadErrorCode = -1
	SDKOK               LoadErrorCode = 0
)

func (c LoadErrorCode) String() string {
	switch c {
	case SDKDLLPathTooLong:
		return "SDK_DLL_PATH_TOO_LONG"
	case SDKAlreadyOpenError:
		return "SDK_ALREADY_OPEN_ERROR"
	case SDKOK:
		return "SDK_OK"
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(c))
}
