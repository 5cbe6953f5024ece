package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapRowAccessors(t *testing.T) {
	row := MapRow{
		"RESIDUE":        "S",
		"position":       int64(149),
		"pos_text":       "392",
		"pos_bad":        "12a",
		"pmids":          []byte("100,200"),
		"role_as_enzyme": "T",
		"is_null":        nil,
	}

	s, ok := row.String("residue")
	assert.True(t, ok)
	assert.Equal(t, "S", s)

	n, ok := row.Int64("POSITION")
	assert.True(t, ok)
	assert.Equal(t, int64(149), n)

	n, ok = row.Int64("pos_text")
	assert.True(t, ok)
	assert.Equal(t, int64(392), n)

	_, ok = row.Int64("pos_bad")
	assert.False(t, ok, "non-numeric text must be treated as absent")

	s, ok = row.String("pmids")
	assert.True(t, ok)
	assert.Equal(t, "100,200", s)

	b, ok := row.Bool("role_as_enzyme")
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = row.String("is_null")
	assert.False(t, ok)
	_, ok = row.String("missing")
	assert.False(t, ok)
}

func TestOracleRowCoercion(t *testing.T) {
	row := oracleRow{values: map[string]any{
		"position":          float64(19),
		"fraction":          float64(1.5),
		"role_as_substrate": "F",
		"flag_num":          int64(1),
	}}

	n, ok := row.Int64("POSITION")
	assert.True(t, ok)
	assert.Equal(t, int64(19), n)

	_, ok = row.Int64("fraction")
	assert.False(t, ok)

	s, ok := row.String("position")
	assert.True(t, ok)
	assert.Equal(t, "19", s)

	b, ok := row.Bool("role_as_substrate")
	assert.True(t, ok)
	assert.False(t, b)

	b, ok = row.Bool("flag_num")
	assert.True(t, ok)
	assert.True(t, b)
}

func TestParseEngine(t *testing.T) {
	e, err := ParseEngine("Oracle")
	assert.NoError(t, err)
	assert.Equal(t, Oracle, e)

	e, err = ParseEngine("")
	assert.NoError(t, err)
	assert.Equal(t, Postgres, e)

	_, err = ParseEngine("mysql")
	assert.Error(t, err)
}
