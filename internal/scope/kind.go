// ABOUTME: Kind is the capability that parameterizes the selection flow per scope variant
// ABOUTME: One Kind is active per deployment: institution or state
package scope

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Kind names, also accepted by config and the --kind flag
const (
	InstitutionKindName  = "institution"
	JurisdictionKindName = "state"
)

// Tool names exchanged with the presentation layer
const (
	SelectInstitutionTool    = "select-institution"
	InstitutionSelectedTool  = "institution-selected"
	SelectJurisdictionTool   = "select-diario-state"
	JurisdictionSelectedTool = "diario-state-selected"
)

// Persisted storage keys, one per kind
const (
	InstitutionStorageKey  = "institution"
	JurisdictionStorageKey = "diarioState"
)

// Directory lists the selectable values; implemented by directory.Client
type Directory interface {
	Institutions(ctx context.Context) ([]Institution, error)
	States(ctx context.Context) ([]StateCode, error)
}

// Kind describes how one scope variant is requested, listed, labeled and persisted
type Kind interface {
	Name() string
	StorageKey() string
	SelectToolName() string
	SelectedToolName() string
	ListOptions(ctx context.Context, dir Directory) ([]Option, error)
	Encode(s Scope) ([]byte, error)
	Decode(data []byte) (Scope, error)
}

// KindByName returns the Kind for "institution" or "state"
func KindByName(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case InstitutionKindName:
		return InstitutionKind{}, nil
	case JurisdictionKindName, "jurisdiction", "diario-state":
		return JurisdictionKind{}, nil
	default:
		return nil, fmt.Errorf("unknown scope kind %q (want %s or %s)", name, InstitutionKindName, JurisdictionKindName)
	}
}

// InstitutionKind selects one institution from the directory
type InstitutionKind struct{}

func (InstitutionKind) Name() string             { return InstitutionKindName }
func (InstitutionKind) StorageKey() string       { return InstitutionStorageKey }
func (InstitutionKind) SelectToolName() string   { return SelectInstitutionTool }
func (InstitutionKind) SelectedToolName() string { return InstitutionSelectedTool }

// ListOptions fetches institutions, skipping records that cannot scope a request
func (InstitutionKind) ListOptions(ctx context.Context, dir Directory) ([]Option, error) {
	institutions, err := dir.Institutions(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]Option, 0, len(institutions))
	for _, inst := range institutions {
		if inst.Validate() != nil {
			continue
		}
		options = append(options, Option{Value: inst.Slug, Label: inst.Name, Scope: inst})
	}
	return options, nil
}

func (InstitutionKind) Encode(s Scope) ([]byte, error) {
	inst, ok := s.(Institution)
	if !ok {
		return nil, fmt.Errorf("cannot store %s scope as institution", s.KindName())
	}
	return json.Marshal(inst)
}

func (InstitutionKind) Decode(data []byte) (Scope, error) {
	var inst Institution
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, fmt.Errorf("decoding institution: %w", err)
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// JurisdictionKind selects one state from the directory
type JurisdictionKind struct{}

func (JurisdictionKind) Name() string             { return JurisdictionKindName }
func (JurisdictionKind) StorageKey() string       { return JurisdictionStorageKey }
func (JurisdictionKind) SelectToolName() string   { return SelectJurisdictionTool }
func (JurisdictionKind) SelectedToolName() string { return JurisdictionSelectedTool }

// ListOptions fetches state codes; codes outside the state table are dropped
func (JurisdictionKind) ListOptions(ctx context.Context, dir Directory) ([]Option, error) {
	codes, err := dir.States(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]Option, 0, len(codes))
	for _, code := range codes {
		if !code.Valid() {
			continue
		}
		options = append(options, Option{
			Value: string(code),
			Label: code.DisplayName(),
			Scope: Jurisdiction{Code: code},
		})
	}
	return options, nil
}

func (JurisdictionKind) Encode(s Scope) ([]byte, error) {
	j, ok := s.(Jurisdiction)
	if !ok {
		return nil, fmt.Errorf("cannot store %s scope as state", s.KindName())
	}
	return json.Marshal(j)
}

func (JurisdictionKind) Decode(data []byte) (Scope, error) {
	var j Jurisdiction
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("decoding state: %w", err)
	}
	return j, nil
}
