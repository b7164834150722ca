// ABOUTME: Scope is the single active context narrowing which documents are searched
// ABOUTME: Two mutually exclusive variants: an institution or a jurisdiction (state)
package scope

import (
	"encoding/json"
	"fmt"
)

// Query parameter names understood by the answering service
const (
	InstitutionParam  = "i"
	JurisdictionParam = "state"
)

// Param is the request-scoping parameter attached to answering calls
type Param struct {
	Key   string
	Value string
}

// String renders the param as a query fragment (e.g. "state=PI")
func (p Param) String() string {
	return p.Key + "=" + p.Value
}

// Scope is the active scope slot. Implemented only by Institution and Jurisdiction.
type Scope interface {
	// KindName reports which variant this is ("institution" or "state")
	KindName() string
	// Label is the human-readable name used to title the conversation
	Label() string
	// Param is the identifying value sent to the answering service
	Param() Param

	sealed()
}

// Institution scopes questions to a single publishing body
type Institution struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (Institution) KindName() string { return InstitutionKindName }
func (i Institution) Label() string  { return i.Name }
func (i Institution) Param() Param   { return Param{Key: InstitutionParam, Value: i.Slug} }
func (Institution) sealed()          {}

// Validate checks that the institution can be used as a request scope
func (i Institution) Validate() error {
	if i.Slug == "" {
		return fmt.Errorf("institution %q has no slug", i.Name)
	}
	if i.Name == "" {
		return fmt.Errorf("institution %q has no name", i.Slug)
	}
	return nil
}

// Jurisdiction scopes questions to every official gazette of a state
type Jurisdiction struct {
	Code StateCode
}

func (Jurisdiction) KindName() string { return JurisdictionKindName }
func (j Jurisdiction) Label() string  { return j.Code.DisplayName() }
func (j Jurisdiction) Param() Param {
	return Param{Key: JurisdictionParam, Value: string(j.Code)}
}
func (Jurisdiction) sealed() {}

// MarshalJSON stores a jurisdiction as its bare code, e.g. "PI"
func (j Jurisdiction) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(j.Code))
}

// UnmarshalJSON accepts a bare code and rejects codes outside the state table
func (j *Jurisdiction) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("jurisdiction must be a JSON string: %w", err)
	}
	code, err := ParseStateCode(raw)
	if err != nil {
		return err
	}
	j.Code = code
	return nil
}

// Option is one selectable value offered to the user
type Option struct {
	Value string // slug or state code
	Label string // display name, also the thread title once picked
	Scope Scope
}
