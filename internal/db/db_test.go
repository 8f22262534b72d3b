package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorConversion(t *testing.T) {
	assert.Nil(t, toVector(nil))
	assert.Nil(t, toVector([]float32{}))
	assert.Equal(t, []float32{}, fromVector(nil))

	v := toVector([]float32{0.1, 0.2})
	require.NotNil(t, v)
	assert.Equal(t, []float32{0.1, 0.2}, fromVector(v))
}

func TestMarshalJSON_NilSliceIsEmptyArray(t *testing.T) {
	var skills []string
	b, err := marshalJSON(skills)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))

	b, err = marshalJSON([]string{"go"})
	require.NoError(t, err)
	assert.JSONEq(t, `["go"]`, string(b))
}

func TestSchema(t *testing.T) {
	ddl := Schema()
	assert.Contains(t, ddl, "CREATE EXTENSION IF NOT EXISTS vector")
	for _, table := range []string{"jobs", "candidates", "matches", "interviews"} {
		assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, ddl, "match_id         UUID NOT NULL UNIQUE")
}
