package wakeerrors

import (
	"os"
	"testing"
)

func TestE(t *testing.T) {
	e := E("open", "/tmp/missing.wake", os.ErrNotExist)
	if got, want := Recover(e).Kind, NotExist; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// Collapse errors of the same kind.
	e = E("read", Fatal, E("parse", Fatal))
	want := "read: fatal:\n\tparse"
	if got := e.Error(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestError(t *testing.T) {
	e := E("open", "in.wake", Invalid, New("not valid UTF-8"))
	if got, want := e.Error(), "open in.wake: invalid input: not valid UTF-8"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	e = E("read", "/dev/null", E(NotExist))
	if got, want := e.Error(), "read /dev/null: resource does not exist"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestIs(t *testing.T) {
	for kind := Other; kind < maxKind; kind++ {
		if !Is(kind, E(kind)) {
			t.Errorf("Is(%v, E(%v)) = false, want true", kind, kind)
		}
	}
	if got, want := Is(Fatal, nil), false; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRecoverNil(t *testing.T) {
	if Recover(nil) != nil {
		t.Error("expected nil")
	}
}
