package docerr

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestWrapPreservesKind(t *testing.T) {
	inner := New(KindEncrypted, "probe", "password required")
	outer := Wrap(KindFileAccess, "parse", fmt.Errorf("header: %w", inner))

	k, ok := KindOf(outer)
	if !ok || k != KindEncrypted {
		t.Fatalf("KindOf() = %v, %v; want encrypted", k, ok)
	}
	if !Is(outer, KindEncrypted) {
		t.Error("Is(outer, encrypted) = false")
	}
	if Is(outer, KindTruncated) {
		t.Error("Is(outer, truncated) = true")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(KindTruncated, "read", nil) != nil {
		t.Error("Wrap(nil) must return nil")
	}
}

func TestErrorsIsByKind(t *testing.T) {
	err := Wrap(KindTruncated, "read", io.ErrUnexpectedEOF)
	if !errors.Is(err, &Error{Kind: KindTruncated}) {
		t.Error("errors.Is does not match by kind")
	}
	if errors.Is(err, &Error{Kind: KindUnsupported}) {
		t.Error("errors.Is matched wrong kind")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("wrapped error is not reachable")
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: KindUnsupported}, "unsupported"},
		{&Error{Kind: KindUnsupported, Op: "probe"}, "probe: unsupported"},
		{&Error{Kind: KindTruncated, Err: io.EOF}, "truncated: EOF"},
		{&Error{Kind: KindTruncated, Op: "read", Err: io.EOF}, "read: truncated: EOF"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestDiagnostic(t *testing.T) {
	if Diagnostic(nil) != "" {
		t.Error("Diagnostic(nil) must be empty")
	}
	seen := make(map[string]bool)
	for k := range _KindMap {
		d := Diagnostic(New(k, "", "x"))
		if d == "" {
			t.Errorf("no diagnostic for %s", k)
		}
		if seen[d] {
			t.Errorf("diagnostic for %s is not unique: %q", k, d)
		}
		seen[d] = true
	}
	if Diagnostic(errors.New("plain")) == "" {
		t.Error("unclassified errors need diagnostic too")
	}
}
