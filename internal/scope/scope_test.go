// ABOUTME: Tests for scope variants, the state table and kind capabilities
// ABOUTME: Covers labels, request params, persistence encoding and option listing
package scope

import (
	"context"
	"errors"
	"testing"
)

type fakeDirectory struct {
	institutions []Institution
	states       []StateCode
	err          error
}

func (f *fakeDirectory) Institutions(ctx context.Context) ([]Institution, error) {
	return f.institutions, f.err
}

func (f *fakeDirectory) States(ctx context.Context) ([]StateCode, error) {
	return f.states, f.err
}

func TestJurisdiction_LabelAndParam(t *testing.T) {
	j := Jurisdiction{Code: "PI"}

	if j.Label() != "Piauí" {
		t.Errorf("Label() = %q, want Piauí", j.Label())
	}
	if got := j.Param().String(); got != "state=PI" {
		t.Errorf("Param() = %q, want state=PI", got)
	}
	if j.KindName() != JurisdictionKindName {
		t.Errorf("KindName() = %q", j.KindName())
	}
}

func TestInstitution_LabelAndParam(t *testing.T) {
	inst := Institution{ID: 7, Name: "Governo do Piauí", Slug: "governo-pi"}

	if inst.Label() != "Governo do Piauí" {
		t.Errorf("Label() = %q", inst.Label())
	}
	if got := inst.Param().String(); got != "i=governo-pi" {
		t.Errorf("Param() = %q, want i=governo-pi", got)
	}
}

func TestParseStateCode(t *testing.T) {
	tests := []struct {
		in      string
		want    StateCode
		wantErr bool
	}{
		{"PI", "PI", false},
		{" sp ", "SP", false},
		{"df", "DF", false},
		{"XX", "", true},
		{"", "", true},
		{"Piauí", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStateCode(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidState) {
					t.Errorf("ParseStateCode(%q) error = %v, want ErrInvalidState", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStateCode(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseStateCode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAllStateCodes(t *testing.T) {
	codes := AllStateCodes()
	if len(codes) != 27 {
		t.Fatalf("got %d codes, want 27", len(codes))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Errorf("codes not sorted at %d: %s >= %s", i, codes[i-1], codes[i])
		}
	}
}

func TestKindByName(t *testing.T) {
	tests := []struct {
		name       string
		wantSelect string
		wantErr    bool
	}{
		{"institution", SelectInstitutionTool, false},
		{"state", SelectJurisdictionTool, false},
		{"STATE", SelectJurisdictionTool, false},
		{"jurisdiction", SelectJurisdictionTool, false},
		{"city", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := KindByName(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("KindByName() error = %v", err)
			}
			if kind.SelectToolName() != tt.wantSelect {
				t.Errorf("SelectToolName() = %q, want %q", kind.SelectToolName(), tt.wantSelect)
			}
		})
	}
}

func TestJurisdictionKind_EncodeDecode(t *testing.T) {
	kind := JurisdictionKind{}

	data, err := kind.Encode(Jurisdiction{Code: "PI"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if string(data) != `"PI"` {
		t.Errorf("Encode() = %s, want \"PI\"", data)
	}

	s, err := kind.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if s.(Jurisdiction).Code != "PI" {
		t.Errorf("Decode() = %v", s)
	}

	if _, err := kind.Decode([]byte(`"ZZ"`)); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Decode(ZZ) error = %v, want ErrInvalidState", err)
	}

	if _, err := kind.Encode(Institution{Name: "x", Slug: "x"}); err == nil {
		t.Error("Encode(institution) should fail for state kind")
	}
}

func TestInstitutionKind_EncodeDecode(t *testing.T) {
	kind := InstitutionKind{}
	inst := Institution{ID: 3, Name: "Prefeitura de Teresina", Slug: "pm-teresina"}

	data, err := kind.Encode(inst)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	s, err := kind.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if s != inst {
		t.Errorf("Decode() = %+v, want %+v", s, inst)
	}

	if _, err := kind.Decode([]byte(`{"id":1,"name":"no slug"}`)); err == nil {
		t.Error("Decode() should reject institution without slug")
	}
}

func TestJurisdictionKind_ListOptions_DropsUnknownCodes(t *testing.T) {
	dir := &fakeDirectory{states: []StateCode{"PI", "XX", "MA"}}

	options, err := JurisdictionKind{}.ListOptions(context.Background(), dir)
	if err != nil {
		t.Fatalf("ListOptions() error = %v", err)
	}
	if len(options) != 2 {
		t.Fatalf("got %d options, want 2", len(options))
	}
	if options[0].Value != "PI" || options[0].Label != "Piauí" {
		t.Errorf("options[0] = %+v", options[0])
	}
	if options[1].Label != "Maranhão" {
		t.Errorf("options[1].Label = %q, want Maranhão", options[1].Label)
	}
}

func TestInstitutionKind_ListOptions(t *testing.T) {
	dir := &fakeDirectory{institutions: []Institution{
		{ID: 1, Name: "Governo do Piauí", Slug: "governo-pi"},
		{ID: 2, Name: "", Slug: "broken"},
	}}

	options, err := InstitutionKind{}.ListOptions(context.Background(), dir)
	if err != nil {
		t.Fatalf("ListOptions() error = %v", err)
	}
	if len(options) != 1 {
		t.Fatalf("got %d options, want 1", len(options))
	}
	if options[0].Value != "governo-pi" {
		t.Errorf("Value = %q, want governo-pi", options[0].Value)
	}
}

func TestListOptions_PropagatesError(t *testing.T) {
	boom := errors.New("directory down")
	dir := &fakeDirectory{err: boom}

	if _, err := (InstitutionKind{}).ListOptions(context.Background(), dir); !errors.Is(err, boom) {
		t.Errorf("institution error = %v, want %v", err, boom)
	}
	if _, err := (JurisdictionKind{}).ListOptions(context.Background(), dir); !errors.Is(err, boom) {
		t.Errorf("state error = %v, want %v", err, boom)
	}
}
