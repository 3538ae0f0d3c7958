// Package diagnostic collects per-type resolution problems for reporting.
//
// Key capabilities:
//   - Error diagnostics for types that cannot be serialized, coded by the
//     resolution failure class
//   - Warnings for suspicious but valid definitions (duplicate wire names)
//   - Infos summarizing what each resolved type writes
package diagnostic
