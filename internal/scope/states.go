// ABOUTME: Fixed table of Brazilian federative units used as jurisdiction codes
// ABOUTME: Maps each two-letter UF code to its display name
package scope

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidState is returned for codes outside the fixed state table
var ErrInvalidState = errors.New("invalid state code")

// StateCode is a two-letter UF code
type StateCode string

// BrazilStates maps every valid code to its display name
var BrazilStates = map[StateCode]string{
	"AC": "Acre",
	"AL": "Alagoas",
	"AP": "Amapá",
	"AM": "Amazonas",
	"BA": "Bahia",
	"CE": "Ceará",
	"DF": "Distrito Federal",
	"ES": "Espírito Santo",
	"GO": "Goiás",
	"MA": "Maranhão",
	"MT": "Mato Grosso",
	"MS": "Mato Grosso do Sul",
	"MG": "Minas Gerais",
	"PA": "Pará",
	"PB": "Paraíba",
	"PR": "Paraná",
	"PE": "Pernambuco",
	"PI": "Piauí",
	"RJ": "Rio de Janeiro",
	"RN": "Rio Grande do Norte",
	"RS": "Rio Grande do Sul",
	"RO": "Rondônia",
	"RR": "Roraima",
	"SC": "Santa Catarina",
	"SP": "São Paulo",
	"SE": "Sergipe",
	"TO": "Tocantins",
}

// ParseStateCode normalizes and validates a code ("pi" -> "PI")
func ParseStateCode(s string) (StateCode, error) {
	code := StateCode(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := BrazilStates[code]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidState, s)
	}
	return code, nil
}

// Valid reports whether the code is in the state table
func (c StateCode) Valid() bool {
	_, ok := BrazilStates[c]
	return ok
}

// DisplayName returns the state name, or the raw code if unknown
func (c StateCode) DisplayName() string {
	if name, ok := BrazilStates[c]; ok {
		return name
	}
	return string(c)
}

// AllStateCodes returns every valid code in alphabetical order
func AllStateCodes() []StateCode {
	codes := make([]StateCode, 0, len(BrazilStates))
	for code := range BrazilStates {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
