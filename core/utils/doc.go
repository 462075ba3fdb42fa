// Package utils provides loose-typed conversion helpers.
//
// Upload payloads come from many client versions with inconsistent field
// serialization; these helpers coerce interface{} values decoded from JSON
// into the strict types the cleaning stage needs.
package utils
