package assert

import (
	"fmt"
	"testing"

	"github.com/safeharbor/harbor/errors"
)

type recorder struct {
	failed bool
}

func (r *recorder) Helper()                       {}
func (r *recorder) Fatal(...interface{})          { r.failed = true }
func (r *recorder) Fatalf(string, ...interface{}) { r.failed = true }

func TestNil(t *testing.T) {
	var nilErr *errors.Error
	cases := map[string]struct {
		value    interface{}
		wantFail bool
	}{
		"nil":             {nil, false},
		"typed nil":       {nilErr, false},
		"nil slice":       {[]byte(nil), false},
		"error":           {errors.ErrNotFound, true},
		"non nillable":    {42, true},
		"empty but alive": {[]byte{}, true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var r recorder
			Nil(&r, tc.value)
			if r.failed != tc.wantFail {
				t.Fatalf("want fail %v, got %v", tc.wantFail, r.failed)
			}
		})
	}
}

func TestEqualAndPanics(t *testing.T) {
	var r recorder
	Equal(&r, []int{1, 2}, []int{1, 2})
	if r.failed {
		t.Fatal("equal slices reported as different")
	}
	Equal(&r, 1, int64(1))
	if !r.failed {
		t.Fatal("different types reported as equal")
	}

	r = recorder{}
	Panics(&r, func() { panic("boom") })
	if r.failed {
		t.Fatal("panic not recovered")
	}
	Panics(&r, func() {})
	if !r.failed {
		t.Fatal("missing panic not reported")
	}
}

func TestIsErr(t *testing.T) {
	IsErr(t, errors.ErrNotFound, errors.Wrap(errors.ErrNotFound, "record"))
	IsErr(t, nil, nil)

	plain := fmt.Errorf("plain")
	IsErr(t, plain, plain)
}
