package di

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/kbukum/compose/contract"
	apperrors "github.com/kbukum/compose/errors"
)

func TestTypedRegisterAndGet(t *testing.T) {
	r := newTestRegistry()
	buf := &bytes.Buffer{}

	if err := Register[io.Writer](r, buf); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	w, ok := Get[io.Writer](r)
	if !ok || w != buf {
		t.Fatalf("expected buffer back, got (%v, %v)", w, ok)
	}
	if _, ok := Get[*bytes.Buffer](r); ok {
		t.Error("expected concrete key to be distinct from interface key")
	}
}

func TestTypedRegister_NilInterface(t *testing.T) {
	r := newTestRegistry()
	var w io.Writer
	if err := Register(r, w); !apperrors.IsCode(err, apperrors.ErrCodeInvalidArgument) {
		t.Errorf("expected INVALID_ARGUMENT, got %v", err)
	}
}

func TestMustGet(t *testing.T) {
	r := newTestRegistry()
	_ = Register(r, &counter{n: 42})
	if MustGet[*counter](r).n != 42 {
		t.Error("expected registered counter")
	}

	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatal("expected panic for missing service")
		}
		if !strings.Contains(rec.(string), "NOT_FOUND") {
			t.Errorf("expected NOT_FOUND in panic, got %v", rec)
		}
	}()
	MustGet[io.Reader](r)
}

func TestTypedGetOrRegister(t *testing.T) {
	r := newTestRegistry()
	calls := 0
	factory := contract.FactoryFunc[*counter](func() (*counter, error) {
		calls++
		return &counter{n: calls}, nil
	})

	c1, err := GetOrRegister[*counter](r, factory)
	if err != nil {
		t.Fatalf("GetOrRegister failed: %v", err)
	}
	c2, err := GetOrRegister[*counter](r, factory)
	if err != nil {
		t.Fatalf("second GetOrRegister failed: %v", err)
	}
	if c1 != c2 || calls != 1 {
		t.Errorf("expected a single construction, got %d calls", calls)
	}
	if got, _ := Get[*counter](r); got != c1 {
		t.Error("expected Get to return the constructed value")
	}
}

func TestTypedGetOrRegister_WithBoundFactories(t *testing.T) {
	r := newTestRegistry()

	parse := contract.FactoryFunc1[string, int](strconv.Atoi)
	n, err := GetOrRegister(r, contract.Bind1[string, int](parse, "12"))
	if err != nil || n != 12 {
		t.Fatalf("expected 12, got %d (%v)", n, err)
	}

	join := contract.FactoryFunc2[string, string, *strings.Builder](func(a, b string) (*strings.Builder, error) {
		var sb strings.Builder
		sb.WriteString(a)
		sb.WriteString(b)
		return &sb, nil
	})
	sb, err := GetOrRegister(r, contract.Bind2[string, string, *strings.Builder](join, "com", "pose"))
	if err != nil || sb.String() != "compose" {
		t.Fatalf("expected 'compose', got %v (%v)", sb, err)
	}
}

func TestTypedGetOrRegister_Errors(t *testing.T) {
	r := newTestRegistry()

	if _, err := GetOrRegister[*counter](r, nil); !apperrors.IsCode(err, apperrors.ErrCodeInvalidArgument) {
		t.Errorf("expected INVALID_ARGUMENT for nil factory, got %v", err)
	}
	var nilFunc contract.FactoryFunc[*counter]
	if _, err := GetOrRegister[*counter](r, nilFunc); !apperrors.IsCode(err, apperrors.ErrCodeInvalidArgument) {
		t.Errorf("expected INVALID_ARGUMENT for nil factory func, got %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("expected no entries after rejected factories, got %d", r.Len())
	}

	boom := errors.New("boom")
	_, err := GetOrRegister[*counter](r, contract.FactoryFunc[*counter](func() (*counter, error) { return nil, boom }))
	if !errors.Is(err, boom) || !apperrors.IsCode(err, apperrors.ErrCodeConstructionFailed) {
		t.Errorf("expected wrapped construction failure, got %v", err)
	}

	_ = r.RegisterForced(Key[io.Writer](), &counter{})
	if _, err := GetOrRegister[io.Writer](r, contract.FactoryFunc[io.Writer](func() (io.Writer, error) { return &bytes.Buffer{}, nil })); !apperrors.IsCode(err, apperrors.ErrCodeIncompatibleType) {
		t.Errorf("expected INCOMPATIBLE_TYPE for forced mismatch, got %v", err)
	}
}

func TestTypedRemove(t *testing.T) {
	r := newTestRegistry()
	_ = Register(r, &counter{})
	if !Remove[*counter](r) {
		t.Error("expected removal")
	}
	if Remove[*counter](r) {
		t.Error("expected second removal to report false")
	}
}
