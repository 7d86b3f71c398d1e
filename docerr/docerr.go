// Package docerr defines kinds of failures which may happen while extracting
// document content. Kinds are deliberately few: callers decide whether a kind
// is fatal by where it happened, not by what it is.
package docerr

import (
	"errors"
	"fmt"
)

// Kind of failure.
// ENUM(file-access, truncated, encrypted, structure-inconsistent, structure-unavailable, unsupported, page-list-exhausted)
type Kind int

// Error carries failure kind and the operation which produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && len(e.Op) > 0:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case len(e.Op) > 0:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, &Error{Kind: k}) match any error of kind k.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Op == "" && t.Err == nil && t.Kind == e.Kind
	}
	return false
}

// New returns error of requested kind with formatted message.
func New(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// Wrap returns err annotated with kind and operation. If err already has a
// kind it is preserved.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return &Error{Kind: de.Kind, Op: op, Err: err}
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns kind of the first classified error in the chain.
func KindOf(err error) (Kind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}

// Is reports whether err is classified with kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

var diagnostics = map[Kind]string{
	KindFileAccess:            "unable to access the document",
	KindTruncated:             "document is truncated",
	KindEncrypted:             "document is encrypted, password is missing or incorrect",
	KindStructureInconsistent: "document structure is damaged",
	KindStructureUnavailable:  "document structure is missing",
	KindUnsupported:           "document format is not supported",
	KindPageListExhausted:     "document page layout is inconsistent",
}

// Diagnostic returns fixed single line description of the failure suitable
// for end users.
func Diagnostic(err error) string {
	if err == nil {
		return ""
	}
	if k, ok := KindOf(err); ok {
		return diagnostics[k]
	}
	return "unable to process the document"
}
