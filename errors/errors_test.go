package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a    *Error
		b    error
		want bool
	}{
		"instance of the same kind": {
			a:    ErrNotFound,
			b:    ErrNotFound,
			want: true,
		},
		"wrapped kind": {
			a:    ErrNotFound,
			b:    Wrap(ErrNotFound, "escrow"),
			want: true,
		},
		"created with New": {
			a:    ErrUnauthorized,
			b:    ErrUnauthorized.New("not the maker"),
			want: true,
		},
		"two different kinds": {
			a:    ErrNotFound,
			b:    ErrUnauthorized,
			want: false,
		},
		"stdlib error": {
			a:    ErrNotFound,
			b:    stdlib.New("not found"),
			want: false,
		},
		"nil kind and nil error": {
			a:    nil,
			b:    nil,
			want: true,
		},
		"nil kind and a typed nil": {
			a:    nil,
			b:    (*wrappedError)(nil),
			want: true,
		},
		"nil kind and an error": {
			a:    nil,
			b:    ErrEmpty,
			want: false,
		},
		"field error": {
			a:    ErrInvalidAmount,
			b:    Field("ReceiveAmount", ErrInvalidAmount, "must be positive"),
			want: true,
		},
		"second of appended errors": {
			a:    ErrEmpty,
			b:    Append(ErrInvalidAmount.New("a"), ErrEmpty.New("b")),
			want: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestRegisterDuplicatedCodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	Register(ErrNotFound.ABCICode(), "another not found")
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "nothing"); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}

func TestWrapMessage(t *testing.T) {
	err := Wrapf(ErrNotFound, "escrow %d", 7)
	if got, want := err.Error(), "escrow 7: not found"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestStackTraceIsAttachedOnce(t *testing.T) {
	err := Wrap(Wrap(ErrHuman, "inner"), "outer")
	full := fmt.Sprintf("%+v", err)
	if !strings.Contains(full, "TestStackTraceIsAttachedOnce") {
		t.Fatalf("stack trace not present: %s", full)
	}
	if n := strings.Count(full, "TestStackTraceIsAttachedOnce"); n != 1 {
		t.Fatalf("want a single stack trace, got %d", n)
	}
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	if err := fn(); !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
}

func TestFieldErrors(t *testing.T) {
	err := Append(
		Field("Maker", ErrEmpty, "required"),
		Field("Seed", ErrInput, "invalid"),
		nil,
		Field("Maker", ErrInput, "too long"),
	)
	if got := FieldErrors(err, "Maker"); len(got) != 2 {
		t.Fatalf("want two errors, got %d", len(got))
	}
	if got := FieldErrors(err, "MintDeposit"); len(got) != 0 {
		t.Fatalf("want no errors, got %d", len(got))
	}
	if !ErrEmpty.Is(err) {
		t.Fatal("appended error must be of the first error kind")
	}
}

func TestAppendNothing(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}
