package util

import "database/sql"

// StringPtrToNullString converts an optional string to sql.NullString.
// nil is treated as NULL; an empty string is stored as is.
func StringPtrToNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// NullStringToPtr converts sql.NullString back to an optional string.
func NullStringToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// FloatPtrToNullFloat converts an optional float to sql.NullFloat64.
func FloatPtrToNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// NullFloatToPtr converts sql.NullFloat64 back to an optional float.
func NullFloatToPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

// BoolToNumber maps a bool onto the NUMBER(1) columns Oracle uses for flags.
func BoolToNumber(b bool) int {
	if b {
		return 1
	}
	return 0
}
