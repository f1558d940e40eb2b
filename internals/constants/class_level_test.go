package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassLevel(t *testing.T) {
	tests := []struct {
		raw     string
		want    ClassLevel
		wantErr bool
	}{
		{raw: "Class 10-A", want: 10},
		{raw: "10", want: 10},
		{raw: "class 1", want: 1},
		{raw: "Kelas １２", want: 12},
		{raw: "Grade 13", wantErr: true},
		{raw: "Class 0", wantErr: true},
		{raw: "X", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseClassLevel(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, ClassLevelUnassigned, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseClassKey(t *testing.T) {
	lvl, err := ParseClassKey("class-10")
	require.NoError(t, err)
	assert.Equal(t, ClassLevel(10), lvl)

	lvl, err = ParseClassKey(" CLASS-3 ")
	require.NoError(t, err)
	assert.Equal(t, ClassLevel(3), lvl)

	_, err = ParseClassKey("class-")
	assert.Error(t, err)
}

func TestClassLevelKey(t *testing.T) {
	assert.Equal(t, "class-7", ClassLevel(7).Key())
	assert.Equal(t, "", ClassLevelUnassigned.Key())
	assert.Equal(t, "unassigned", ClassLevel(13).String())
	assert.True(t, MaxClassLevel.Valid())
	assert.False(t, ClassLevelUnassigned.Valid())
}
