package filter

import (
	"encoding/json"
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// Apply applies filter and query expressions to a JSON document
// Filter narrows results (e.g., [?userId==`1`])
// Query transforms/selects fields (e.g., [].title)
func Apply(body []byte, filter string, query string) (interface{}, error) {
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return ApplyValue(data, filter, query)
}

// ApplyValue is Apply on an already decoded document
func ApplyValue(data interface{}, filter string, query string) (interface{}, error) {
	result := data

	if filter != "" {
		filtered, err := search(result, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to apply filter: %w", err)
		}
		result = filtered
	}

	if query != "" {
		queried, err := search(result, query)
		if err != nil {
			return nil, fmt.Errorf("failed to apply query: %w", err)
		}
		result = queried
	}

	return result, nil
}

// Normalize converts typed values (structs, typed slices) to the generic
// JSON shape JMESPath evaluates against
func Normalize(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}

	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return data, nil
}

func search(data interface{}, expression string) (interface{}, error) {
	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return nil, fmt.Errorf("JMESPath search failed: %w", err)
	}
	return result, nil
}

// IsValidJMESPath checks if an expression is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}
