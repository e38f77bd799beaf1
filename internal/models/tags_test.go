package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTags_RoundTrip(t *testing.T) {
	tags := Tags{"a", "b"}

	stored, err := tags.Value()
	require.NoError(t, err)
	assert.Equal(t, "a,b", stored)

	var back Tags
	require.NoError(t, back.Scan(stored))
	assert.Equal(t, Tags{"a", "b"}, back)
}

func TestParseTags_DropsBlankEntries(t *testing.T) {
	assert.Equal(t, Tags{}, ParseTags(""))
	assert.Equal(t, Tags{"hot", " lead"}, ParseTags("hot,, , lead"))
}

func TestTags_ScanTypes(t *testing.T) {
	var tags Tags
	require.NoError(t, tags.Scan([]byte("x,y")))
	assert.Equal(t, Tags{"x", "y"}, tags)

	require.NoError(t, tags.Scan(nil))
	assert.Equal(t, Tags{}, tags)

	assert.Error(t, tags.Scan(42))
}

func TestTags_MarshalNilAsEmptyArray(t *testing.T) {
	b, err := json.Marshal(struct {
		Tags Tags `json:"tags"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tags":[]}`, string(b))
}

func TestRequiresBHK(t *testing.T) {
	assert.True(t, RequiresBHK("Apartment"))
	assert.True(t, RequiresBHK("Villa"))
	assert.False(t, RequiresBHK("Plot"))
	assert.False(t, RequiresBHK("apartment"))
}
