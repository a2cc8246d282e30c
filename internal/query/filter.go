// Package query compiles user-supplied conference filter specifications
// into a single well-formed SQL query fragment. Compilation is pure: the
// same filters always produce the same Compiled value, and nothing is
// executed here.
package query

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors for filter compilation. Both are caller errors and map
// to a bad-request condition at the API boundary.
var (
	// ErrInvalidFilter is returned for an unknown field or operator, or
	// a value that cannot be coerced to the field's type.
	ErrInvalidFilter = errors.New("filter contains invalid field or operator")
	// ErrInequalityConflict is returned when inequality operators target
	// more than one field in a single query.
	ErrInequalityConflict = errors.New("inequality filter is allowed on only one field")
)

// Filter is one (field, operator, value) specification from the caller.
type Filter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// fields maps logical filter names to conference columns.
var fields = map[string]string{
	"CITY":          "city",
	"TOPIC":         "topics",
	"MONTH":         "month",
	"MAX_ATTENDEES": "max_attendees",
}

// operators maps logical operator names to SQL comparison operators.
var operators = map[string]string{
	"EQ":   "=",
	"GT":   ">",
	"GTEQ": ">=",
	"LT":   "<",
	"LTEQ": "<=",
	"NE":   "<>",
}

// numericColumns are coerced to integers before binding.
var numericColumns = map[string]bool{
	"month":         true,
	"max_attendees": true,
}

// Compiled is a ready-to-execute query fragment over the conferences
// table: WHERE conditions (ANDed), their bind arguments numbered from
// $1, and the ORDER BY expression.
type Compiled struct {
	Where   []string
	Args    []any
	OrderBy string
}

// Compile validates the filters and produces the query fragment.
//
// Results are ordered by name ascending; if an inequality operator is
// used, its field becomes the first sort key (the store requires the
// first sort key to match the inequality field), followed by name. The
// first field used with a non-equality operator pins the inequality
// field; a later non-equality filter on a different field fails with
// ErrInequalityConflict.
func Compile(filters []Filter) (*Compiled, error) {
	c := &Compiled{}
	inequalityColumn := ""

	for _, f := range filters {
		column, ok := fields[f.Field]
		if !ok {
			return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidFilter, f.Field)
		}
		op, ok := operators[f.Operator]
		if !ok {
			return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidFilter, f.Operator)
		}

		if op != "=" {
			if inequalityColumn != "" && inequalityColumn != column {
				return nil, ErrInequalityConflict
			}
			inequalityColumn = column
		}

		var value any = f.Value
		if numericColumns[column] {
			n, err := strconv.Atoi(f.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidFilter, f.Value)
			}
			value = n
		}

		placeholder := fmt.Sprintf("$%d", len(c.Args)+1)
		cond, err := condition(column, op, placeholder)
		if err != nil {
			return nil, err
		}
		c.Where = append(c.Where, cond)
		c.Args = append(c.Args, value)
	}

	if inequalityColumn != "" && inequalityColumn != "name" {
		c.OrderBy = inequalityColumn + " ASC, name ASC"
	} else {
		c.OrderBy = "name ASC"
	}
	return c, nil
}

// condition renders one comparison. The topics column is an array, so
// equality means membership; ordering comparisons against it have no
// meaning and are rejected.
func condition(column, op, placeholder string) (string, error) {
	if column != "topics" {
		return fmt.Sprintf("%s %s %s", column, op, placeholder), nil
	}
	switch op {
	case "=":
		return fmt.Sprintf("%s = ANY (topics)", placeholder), nil
	case "<>":
		return fmt.Sprintf("NOT (%s = ANY (topics))", placeholder), nil
	default:
		return "", fmt.Errorf("%w: operator %q not supported on TOPIC", ErrInvalidFilter, op)
	}
}
