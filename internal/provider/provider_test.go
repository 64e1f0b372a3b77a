package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/newthinker/navscope/internal/core"
)

// mockProvider for testing
type mockProvider struct {
	name string
}

func (m *mockProvider) Name() string { return m.name }
func (m *mockProvider) SchemeDetails(ctx context.Context, code string) (*core.FundMetadata, error) {
	return &core.FundMetadata{Code: code, Name: "Mock Fund"}, nil
}
func (m *mockProvider) SchemeHistory(ctx context.Context, code string) ([]core.RawPoint, error) {
	return nil, nil
}

type mockCatalog struct {
	name string
}

func (m *mockCatalog) Name() string { return m.name }
func (m *mockCatalog) Schemes(ctx context.Context) ([]core.Scheme, error) {
	return []core.Scheme{{Code: "1", Name: "One"}}, nil
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{name: "mock"})

	p, ok := r.Get("mock")
	if !ok {
		t.Fatal("expected to find registered provider")
	}
	if p.Name() != "mock" {
		t.Errorf("expected name 'mock', got '%s'", p.Name())
	}

	if _, ok := r.Get("missing"); ok {
		t.Error("expected missing provider lookup to fail")
	}
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{name: "b"})
	r.Register(&mockProvider{name: "a"})

	names := r.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("expected [a b], got %v", names)
	}
}

func TestRegistry_Catalog(t *testing.T) {
	r := NewRegistry()
	r.RegisterCatalog(&mockCatalog{name: "amfi"})

	c, ok := r.Catalog("amfi")
	if !ok || c.Name() != "amfi" {
		t.Fatal("expected to find amfi catalog")
	}
	if _, ok := r.Catalog("mfapi"); ok {
		t.Error("expected mfapi catalog lookup to fail")
	}
}

func TestValidateCode(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"119551", "119551", false},
		{" 120828\n", "120828", false},
		{"", "", true},
		{"12a", "", true},
		{"../etc", "", true},
		{"12345678901", "", true},
	}

	for _, tt := range tests {
		got, err := ValidateCode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateCode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, core.ErrInvalidCode) {
			t.Errorf("ValidateCode(%q) error should be ErrInvalidCode, got %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ValidateCode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
