package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAsFindsWrappedError(t *testing.T) {
	inner := New(CodeNotFound, "request not found")
	wrapped := fmt.Errorf("outer: %w", inner)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("unexpected code %s", typed.Code())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("driver failure")
	err := Wrap(CodeDependency, cause, "load request")

	if err.Unwrap() != cause {
		t.Fatal("cause not preserved")
	}
	if err.Error() != "DEPENDENCY_ERROR: load request" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", meta.HTTPStatus)
	}
}

func TestInvalidStateMetadata(t *testing.T) {
	meta := MetadataFor(CodeInvalidState)
	if meta.HTTPStatus != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", meta.HTTPStatus)
	}
	if !meta.DetailsAllowed {
		t.Fatal("expected details allowed")
	}
}

func TestIsCode(t *testing.T) {
	err := Newf(CodeInvalidState, "action %s not allowed from status %s", "cancel", "received")
	if !IsCode(err, CodeInvalidState) {
		t.Fatal("expected invalid state code")
	}
	if IsCode(err, CodeNotFound) {
		t.Fatal("unexpected not found match")
	}
	if IsCode(nil, CodeNotFound) {
		t.Fatal("nil error should not match")
	}
}
