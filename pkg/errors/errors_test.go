package errors

import (
	stderrors "errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidCourse, "invalid course code: %s", "XYZ")

	if err.Code != ErrCodeInvalidCourse {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidCourse)
	}
	if err.Message != "invalid course code: XYZ" {
		t.Errorf("Message = %q", err.Message)
	}
	want := "INVALID_COURSE: invalid course code: XYZ"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStorage, cause, "failed to save record")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	want := "STORAGE_ERROR: failed to save record: disk full"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeCourseNotFound, "no such course")

	if !Is(err, ErrCodeCourseNotFound) {
		t.Error("Is() should match the error's code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is() should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is() should not match plain errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidCatalog, "bad")); got != ErrCodeInvalidCatalog {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInvalidCatalog)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidRecord, "record has no standing")
	if got := UserMessage(err); got != "record has no standing" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q", got)
	}
}
