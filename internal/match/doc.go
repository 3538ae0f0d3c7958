// Package match ranks names by similarity to produce "did you mean"
// suggestions for misspelled annotation keys, commands and type names.
//
// Key functions:
//   - NormalizeIdent: folds case and separators so reading_id ~ ReadingID
//   - Levenshtein: computes edit distance between strings
//   - Rank: orders candidates by similarity
//   - Suggest: picks the closest candidate above a threshold
package match
