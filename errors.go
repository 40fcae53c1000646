package bpe

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel error kinds, matched with errors.Is against wrapped construction
// and loader failures.
var (
	// ErrInvalidConfig indicates a BOS/EOS/UNK string was declared but is
	// absent from the vocabulary, or the construction-time default flags
	// set AddBOS/AddEOS without that token being declared.
	ErrInvalidConfig = errors.New("invalid tokenizer configuration")

	// ErrInvalidFormat indicates a vocabulary or merges file could not be
	// parsed (malformed JSON, malformed merge line).
	ErrInvalidFormat = errors.New("invalid data format")

	// ErrIoFailure wraps an underlying stream read error during loading.
	ErrIoFailure = errors.New("io failure")

	// ErrInvalidArgument indicates a caller-supplied argument is out of
	// range, such as a non-positive max token count.
	ErrInvalidArgument = errors.New("invalid argument")
)

// DataError represents an error related to tokenizer data loading.
type DataError struct {
	Op   string // Operation that failed
	Path string // File path, if applicable
	Err  error  // Underlying error, wrapping one of the sentinels above
}

func (e *DataError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("tokenizer data error: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("tokenizer data error: %s: %v", e.Op, e.Err)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// TokenError represents an error related to a single token operation.
type TokenError struct {
	Token string
	Op    string
	Err   error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("token error: %s %q: %v", e.Op, e.Token, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// ConfigError represents an error in tokenizer construction configuration.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s=%v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func newDataError(op, path string, err error) error {
	return &DataError{Op: op, Path: path, Err: classifyLoadError(err)}
}

// classifyLoadError wraps err with ErrIoFailure or ErrInvalidFormat so
// callers can tell a missing/unreadable file from a malformed one via
// errors.Is, per spec.md §7's four-error-kind contract. A *fs.PathError
// anywhere in the chain (os.ReadFile's failure mode for a missing,
// unreadable, or otherwise inaccessible file) means I/O; anything else
// surfacing from a loader means the data itself didn't parse.
func classifyLoadError(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%w: %v", ErrIoFailure, err)
	}
	return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
}

func newConfigError(field string, value any, err error) error {
	return &ConfigError{Field: field, Value: value, Err: err}
}
