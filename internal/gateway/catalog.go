// ABOUTME: Gateway catalog: the institutions it lists and the agent behind each state
// ABOUTME: Loaded from YAML; agent endpoints and keys are read from named env vars
package gateway

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/harper/radar-oficial/internal/scope"
)

// CatalogInstitution is one publishing body and the state whose agent answers for it
type CatalogInstitution struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Slug  string `yaml:"slug"`
	State string `yaml:"state"`
}

// AgentRef names the env vars holding a state agent's endpoint and access key
type AgentRef struct {
	EndpointEnv string `yaml:"endpoint_env"`
	KeyEnv      string `yaml:"key_env"`
}

// Catalog is the gateway's static directory
type Catalog struct {
	Institutions []CatalogInstitution `yaml:"institutions"`
	Agents       map[string]AgentRef  `yaml:"agents"`
}

// DefaultCatalog serves Piauí, the one state with a deployed agent
func DefaultCatalog() *Catalog {
	return &Catalog{
		Institutions: []CatalogInstitution{
			{ID: 1, Name: "Governo do Estado do Piauí", Slug: "governo-pi", State: "PI"},
			{ID: 2, Name: "Prefeitura Municipal de Teresina", Slug: "pm-teresina", State: "PI"},
		},
		Agents: map[string]AgentRef{
			"PI": {EndpointEnv: "DO_AGENT_PIAUI_URL", KeyEnv: "DO_AGENT_PIAUI_ACCESS_KEY"},
		},
	}
}

// LoadCatalog reads and validates a YAML catalog file
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML catalog
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks state codes, slugs and agent env names
func (c *Catalog) Validate() error {
	slugs := make(map[string]bool, len(c.Institutions))
	for _, inst := range c.Institutions {
		if err := (scope.Institution{ID: inst.ID, Name: inst.Name, Slug: inst.Slug}).Validate(); err != nil {
			return fmt.Errorf("catalog institution %d: %w", inst.ID, err)
		}
		if slugs[inst.Slug] {
			return fmt.Errorf("catalog institution slug %q is duplicated", inst.Slug)
		}
		slugs[inst.Slug] = true
		if !scope.StateCode(inst.State).Valid() {
			return fmt.Errorf("catalog institution %q: %w: %q", inst.Slug, scope.ErrInvalidState, inst.State)
		}
	}
	for code, ref := range c.Agents {
		if !scope.StateCode(code).Valid() {
			return fmt.Errorf("catalog agent: %w: %q", scope.ErrInvalidState, code)
		}
		if ref.EndpointEnv == "" || ref.KeyEnv == "" {
			return fmt.Errorf("catalog agent %s: endpoint_env and key_env are required", code)
		}
	}
	return nil
}

// States lists, sorted, the states that have an agent
func (c *Catalog) States() []string {
	states := make([]string, 0, len(c.Agents))
	for code := range c.Agents {
		states = append(states, code)
	}
	sort.Strings(states)
	return states
}

// Institution finds an institution by slug
func (c *Catalog) Institution(slug string) (CatalogInstitution, bool) {
	for _, inst := range c.Institutions {
		if inst.Slug == slug {
			return inst, true
		}
	}
	return CatalogInstitution{}, false
}
