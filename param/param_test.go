package param

import (
	"errors"
	"math"
	"testing"
)

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name    string
		p       Param
		wantErr bool
		is      error
	}{
		{
			name: "valid bounded",
			p:    Bounded("a", 1, 0, 10),
		},
		{
			name: "valid free",
			p:    Free("b", -3),
		},
		{
			name: "valid fixed",
			p:    Fixed("c", 0),
		},
		{
			name: "valid on boundary",
			p:    Bounded("d", 10, 0, 10),
		},
		{
			name:    "empty name",
			p:       Bounded("", 1, 0, 10),
			wantErr: true,
			is:      ErrEmptyName,
		},
		{
			name:    "inverted bounds",
			p:       Bounded("a", 1, 10, 0),
			wantErr: true,
			is:      ErrInvertedBounds,
		},
		{
			name:    "value below min",
			p:       Bounded("a", -1, 0, 10),
			wantErr: true,
		},
		{
			name:    "value above max",
			p:       Bounded("a", 11, 0, 10),
			wantErr: true,
		},
		{
			name:    "NaN value",
			p:       Bounded("a", math.NaN(), 0, 10),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSet()
			err := s.Add(tt.p)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Add() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Add() error = nil, want error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Fatalf("Add() error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestAddDuplicate(t *testing.T) {
	s := NewSet()
	if err := s.Add(Bounded("a", 1, 0, 10)); err != nil {
		t.Fatalf("first Add() error = %v", err)
	}
	err := s.Add(Bounded("a", 2, 0, 10))
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("second Add() error = %v, want ErrDuplicateName", err)
	}
}

func TestOrderPreserved(t *testing.T) {
	s := NewSet()
	names := []string{"f_0", "Q", "Q_e_real", "Q_e_imag"}
	for i, n := range names {
		if err := s.Add(Free(n, float64(i))); err != nil {
			t.Fatalf("Add(%q) error = %v", n, err)
		}
	}
	got := s.Names()
	if len(got) != len(names) {
		t.Fatalf("Names() length = %d, want %d", len(got), len(names))
	}
	for i := range names {
		if got[i] != names[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], names[i])
		}
	}
}

func TestValueAndSetValue(t *testing.T) {
	s := NewSet()
	if err := s.Add(Bounded("a", 1, 0, 10)); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	v, err := s.Value("a")
	if err != nil || v != 1 {
		t.Fatalf("Value(a) = %v, %v, want 1, nil", v, err)
	}

	if err := s.SetValue("a", 5); err != nil {
		t.Fatalf("SetValue(a, 5) error = %v", err)
	}
	v, _ = s.Value("a")
	if v != 5 {
		t.Fatalf("Value(a) after SetValue = %v, want 5", v)
	}

	if err := s.SetValue("a", 11); err == nil {
		t.Fatal("SetValue(a, 11) error = nil, want out of bounds error")
	}
	if _, err := s.Value("missing"); !errors.Is(err, ErrUnknownName) {
		t.Fatalf("Value(missing) error = %v, want ErrUnknownName", err)
	}
}

func TestFreeSubset(t *testing.T) {
	s := NewSet()
	s.Add(Bounded("a", 1, 0, 10))
	s.Add(Fixed("b", 2))
	s.Add(Bounded("c", 3, -5, 5))

	if got := s.NFree(); got != 2 {
		t.Fatalf("NFree() = %d, want 2", got)
	}
	wantNames := []string{"a", "c"}
	for i, n := range s.FreeNames() {
		if n != wantNames[i] {
			t.Errorf("FreeNames()[%d] = %q, want %q", i, n, wantNames[i])
		}
	}
	wantValues := []float64{1, 3}
	for i, v := range s.FreeValues() {
		if v != wantValues[i] {
			t.Errorf("FreeValues()[%d] = %v, want %v", i, v, wantValues[i])
		}
	}
	lo, hi := s.FreeBounds()
	if lo[0] != 0 || hi[0] != 10 || lo[1] != -5 || hi[1] != 5 {
		t.Errorf("FreeBounds() = %v, %v, want [0 -5], [10 5]", lo, hi)
	}
}

func TestSetFreeValues(t *testing.T) {
	s := NewSet()
	s.Add(Bounded("a", 1, 0, 10))
	s.Add(Fixed("b", 2))
	s.Add(Bounded("c", 3, -5, 5))

	if err := s.SetFreeValues([]float64{7, -4}); err != nil {
		t.Fatalf("SetFreeValues() error = %v", err)
	}
	if v, _ := s.Value("a"); v != 7 {
		t.Errorf("a = %v, want 7", v)
	}
	if v, _ := s.Value("b"); v != 2 {
		t.Errorf("fixed b moved to %v, want 2", v)
	}
	if v, _ := s.Value("c"); v != -4 {
		t.Errorf("c = %v, want -4", v)
	}

	if err := s.SetFreeValues([]float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("short vector error = %v, want ErrLengthMismatch", err)
	}
	if err := s.SetFreeValues([]float64{11, 0}); err == nil {
		t.Fatal("out-of-bounds vector error = nil, want error")
	}
	// Failed write must not partially mutate.
	if v, _ := s.Value("a"); v != 7 {
		t.Errorf("a after failed write = %v, want 7", v)
	}
}

func TestInBounds(t *testing.T) {
	s := NewSet()
	s.Add(Bounded("a", 1, 0, 10))
	s.Add(Bounded("c", 3, -5, 5))

	tests := []struct {
		name string
		v    []float64
		want bool
	}{
		{"inside", []float64{5, 0}, true},
		{"on boundary", []float64{0, 5}, true},
		{"below", []float64{-1, 0}, false},
		{"above", []float64{5, 6}, false},
		{"NaN", []float64{math.NaN(), 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.InBounds(tt.v)
			if err != nil {
				t.Fatalf("InBounds() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("InBounds(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}

	if _, err := s.InBounds([]float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("short vector error = %v, want ErrLengthMismatch", err)
	}
}

func TestClone(t *testing.T) {
	s := NewSet()
	s.Add(Bounded("a", 1, 0, 10))
	s.Add(Fixed("b", 2))

	c := s.Clone()
	if err := c.SetValue("a", 9); err != nil {
		t.Fatalf("SetValue on clone error = %v", err)
	}
	if v, _ := s.Value("a"); v != 1 {
		t.Errorf("original mutated by clone write: a = %v, want 1", v)
	}
	if v, _ := c.Value("a"); v != 9 {
		t.Errorf("clone a = %v, want 9", v)
	}
	if c.Len() != s.Len() {
		t.Errorf("clone Len() = %d, want %d", c.Len(), s.Len())
	}
}
