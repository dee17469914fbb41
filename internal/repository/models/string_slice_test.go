package models

import (
	"database/sql/driver"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSlice_Value(t *testing.T) {
	tests := []struct {
		name    string
		s       StringSlice
		wantVal driver.Value
	}{
		{name: "nil slice", s: nil, wantVal: "[]"},
		{name: "empty slice", s: StringSlice{}, wantVal: "[]"},
		{name: "one element", s: StringSlice{"goroutine"}, wantVal: `["goroutine"]`},
		{name: "element with comma", s: StringSlice{"a,b", "c"}, wantVal: `["a,b","c"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.s.Value()
			require.NoError(t, err)
			assert.Equal(t, tt.wantVal, got)
		})
	}
}

func TestStringSlice_Scan(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    StringSlice
		wantErr bool
	}{
		{name: "nil", input: nil, want: StringSlice{}},
		{name: "empty bytes", input: []byte{}, want: StringSlice{}},
		{name: "null literal", input: "null", want: StringSlice{}},
		{name: "json string", input: `["easy","go"]`, want: StringSlice{"easy", "go"}},
		{name: "json bytes", input: []byte(`["x"]`), want: StringSlice{"x"}},
		{name: "invalid json", input: "not json", wantErr: true},
		{name: "unsupported type", input: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s StringSlice
			err := s.Scan(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}
