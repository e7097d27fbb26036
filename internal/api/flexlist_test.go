package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListDecodesNativeArray(t *testing.T) {
	var got StringList
	require.NoError(t, json.Unmarshal([]byte(`["Go","SQL","Kubernetes"]`), &got))
	assert.Equal(t, StringList{"Go", "SQL", "Kubernetes"}, got)
}

func TestStringListDecodesCommaSeparatedString(t *testing.T) {
	var got StringList
	require.NoError(t, json.Unmarshal([]byte(`"Go, SQL ,Kubernetes"`), &got))
	assert.Equal(t, StringList{"Go", "SQL", "Kubernetes"}, got)
}

func TestStringListDecodesStringEncodedArray(t *testing.T) {
	var got StringList
	require.NoError(t, json.Unmarshal([]byte(`"[\"Go\",\"SQL\"]"`), &got))
	assert.Equal(t, StringList{"Go", "SQL"}, got)
}

func TestStringListDecodesSingleValue(t *testing.T) {
	var got StringList
	require.NoError(t, json.Unmarshal([]byte(`"Go"`), &got))
	assert.Equal(t, StringList{"Go"}, got)
}

func TestStringListDropsEmptyItems(t *testing.T) {
	var got StringList
	require.NoError(t, json.Unmarshal([]byte(`" , ,"`), &got))
	assert.Nil(t, got)

	require.NoError(t, json.Unmarshal([]byte(`""`), &got))
	assert.Nil(t, got)
}

func TestStringListDecodesNull(t *testing.T) {
	var got StringList
	require.NoError(t, json.Unmarshal([]byte(`null`), &got))
	assert.Nil(t, got)
}
