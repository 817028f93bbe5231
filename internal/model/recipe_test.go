package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Number
		wantErr bool
	}{
		{name: "number", input: `12.5`, want: 12.5},
		{name: "numeric string", input: `"15"`, want: 15},
		{name: "padded string", input: `" 7 "`, want: 7},
		{name: "empty string", input: `""`, want: 0},
		{name: "null", input: `null`, want: 0},
		{name: "word", input: `"soon"`, wantErr: true},
		{name: "NaN", input: `"NaN"`, wantErr: true},
		{name: "Inf", input: `"Inf"`, wantErr: true},
		{name: "negative infinity", input: `"-Infinity"`, wantErr: true},
		{name: "overflow", input: `1e999`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			err := json.Unmarshal([]byte(tt.input), &n)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}
