// Package analyze loads Go packages and extracts annotated struct
// definitions for the ahead-of-time generator.
//
// It uses golang.org/x/tools/go/packages with go/types to describe each
// candidate struct as a schema.TypeDef, the same input the runtime path
// builds from reflection, so both paths resolve identically.
//
// Key types:
//   - TypeID: package import path + type name
//   - Package: a loaded package, its directory and its candidate types
//   - Candidate: one annotated named struct and its TypeDef
package analyze
