package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileInequalityThenEquality(t *testing.T) {
	c, err := Compile([]Filter{
		{Field: "MAX_ATTENDEES", Operator: "GT", Value: "10"},
		{Field: "CITY", Operator: "EQ", Value: "Paris"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"max_attendees > $1", "city = $2"}, c.Where)
	require.Equal(t, []any{10, "Paris"}, c.Args)
	require.Equal(t, "max_attendees ASC, name ASC", c.OrderBy)
}

func TestCompileNoFilters(t *testing.T) {
	c, err := Compile(nil)
	require.NoError(t, err)
	require.Empty(t, c.Where)
	require.Empty(t, c.Args)
	require.Equal(t, "name ASC", c.OrderBy)
}

func TestCompileEqualityOnly(t *testing.T) {
	c, err := Compile([]Filter{
		{Field: "CITY", Operator: "EQ", Value: "London"},
		{Field: "MONTH", Operator: "EQ", Value: "6"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"city = $1", "month = $2"}, c.Where)
	require.Equal(t, []any{"London", 6}, c.Args)
	require.Equal(t, "name ASC", c.OrderBy)
}

func TestCompileInequalityConflict(t *testing.T) {
	_, err := Compile([]Filter{
		{Field: "MAX_ATTENDEES", Operator: "GT", Value: "10"},
		{Field: "MONTH", Operator: "LT", Value: "6"},
	})
	require.ErrorIs(t, err, ErrInequalityConflict)
}

func TestCompileRepeatedInequalitySameField(t *testing.T) {
	c, err := Compile([]Filter{
		{Field: "MONTH", Operator: "GTEQ", Value: "3"},
		{Field: "MONTH", Operator: "LTEQ", Value: "9"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"month >= $1", "month <= $2"}, c.Where)
	require.Equal(t, "month ASC, name ASC", c.OrderBy)
}

func TestCompileInvalidField(t *testing.T) {
	_, err := Compile([]Filter{{Field: "VENUE", Operator: "EQ", Value: "x"}})
	require.ErrorIs(t, err, ErrInvalidFilter)
}

func TestCompileInvalidOperator(t *testing.T) {
	_, err := Compile([]Filter{{Field: "CITY", Operator: "LIKE", Value: "x"}})
	require.ErrorIs(t, err, ErrInvalidFilter)
}

func TestCompileNumericCoercion(t *testing.T) {
	_, err := Compile([]Filter{{Field: "MONTH", Operator: "EQ", Value: "June"}})
	require.ErrorIs(t, err, ErrInvalidFilter)
}

func TestCompileTopicMembership(t *testing.T) {
	c, err := Compile([]Filter{{Field: "TOPIC", Operator: "EQ", Value: "Go"}})
	require.NoError(t, err)
	require.Equal(t, []string{"$1 = ANY (topics)"}, c.Where)
	require.Equal(t, []any{"Go"}, c.Args)

	c, err = Compile([]Filter{{Field: "TOPIC", Operator: "NE", Value: "Go"}})
	require.NoError(t, err)
	require.Equal(t, []string{"NOT ($1 = ANY (topics))"}, c.Where)

	_, err = Compile([]Filter{{Field: "TOPIC", Operator: "GT", Value: "Go"}})
	require.ErrorIs(t, err, ErrInvalidFilter)
}

func TestCompileIsDeterministic(t *testing.T) {
	filters := []Filter{
		{Field: "MAX_ATTENDEES", Operator: "GT", Value: "10"},
		{Field: "CITY", Operator: "EQ", Value: "Paris"},
	}
	a, err := Compile(filters)
	require.NoError(t, err)
	b, err := Compile(filters)
	require.NoError(t, err)
	require.Equal(t, a, b)
}
