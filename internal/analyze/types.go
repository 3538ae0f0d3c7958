package analyze

import (
	"measurement-generator/internal/common"
	"measurement-generator/schema"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "measurement-generator/examples/sensors"
	Name    string // e.g., "Reading"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Short returns the type as written in its own package's callers, e.g.
// "sensors.Reading".
func (t TypeID) Short() string {
	if alias := common.PkgAlias(t.PkgPath); alias != "" {
		return alias + "." + t.Name
	}

	return t.Name
}

// Package holds the candidates found in one loaded package.
type Package struct {
	Path  string // Import path
	Name  string // Package name
	Dir   string // Directory holding the package's Go files
	Types []Candidate
}

// Candidate is a named struct that carries at least one annotation.
type Candidate struct {
	ID  TypeID
	Def schema.TypeDef
}

// Find returns the candidate with the given type name.
func (p *Package) Find(name string) (Candidate, bool) {
	for _, c := range p.Types {
		if c.ID.Name == name {
			return c, true
		}
	}

	return Candidate{}, false
}
