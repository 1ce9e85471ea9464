package errors

import (
	"fmt"
	"testing"
)

func TestNewAndIsCode(t *testing.T) {
	err := New(CodeNotFound, "missing thing")
	if !IsCode(err, CodeNotFound) {
		t.Errorf("expected CodeNotFound")
	}
	if IsCode(err, CodeConflict) {
		t.Errorf("did not expect CodeConflict")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(cause, CodeInternal, "operation failed")

	var de *DomainError
	if !asDomain(err, &de) {
		t.Fatalf("expected DomainError")
	}
	if de.Unwrap() != cause {
		t.Errorf("expected wrapped cause")
	}
}

func TestAddContextOnPlainError(t *testing.T) {
	err := AddContext(fmt.Errorf("plain"), CtxPath, "/tmp/x.ts")

	var de *DomainError
	if !asDomain(err, &de) {
		t.Fatalf("expected DomainError")
	}
	if de.Context[CtxPath] != "/tmp/x.ts" {
		t.Errorf("expected path context, got %v", de.Context)
	}
	if de.Code != CodeInternal {
		t.Errorf("expected CodeInternal, got %s", de.Code)
	}
}

func TestAddContextOnDomainError(t *testing.T) {
	err := New(CodeValidationError, "bad input")
	err = AddContext(err, CtxDeclaration, "Opts")

	var de *DomainError
	if !asDomain(err, &de) {
		t.Fatalf("expected DomainError")
	}
	if de.Code != CodeValidationError {
		t.Errorf("code must survive AddContext, got %s", de.Code)
	}
	if de.Context[CtxDeclaration] != "Opts" {
		t.Errorf("expected declaration context, got %v", de.Context)
	}
}

func asDomain(err error, target **DomainError) bool {
	de, ok := err.(*DomainError)
	if ok {
		*target = de
	}
	return ok
}
