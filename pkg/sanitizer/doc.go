// Package sanitizer normalizes user input before validation and storage.
//
// All normalization functions are idempotent: applying them twice gives the
// same result as applying them once. Invalid input is handled gracefully,
// usually by returning it trimmed rather than failing.
//
// Normalization includes:
//   - Emails: trimmed and lower-cased so the unique index sees one spelling
//   - Phone numbers: E.164 when the number parses and is valid, otherwise trimmed
//   - Links: http or https only, host lower-cased
//   - Strings: collapse whitespace, trim leading/trailing spaces
//   - Slices: remove duplicates and empty values after normalization
package sanitizer
