package service

import (
	"encoding/json"
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// decodeAny unmarshals a JSON body into generic values for JMESPath.
func decodeAny(body []byte) (any, error) {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return data, nil
}

// extractString evaluates expr against data and returns a trimmed string result.
func extractString(ev JMESPathEvaluator, expr string, data any) string {
	if strings.TrimSpace(expr) == "" {
		return ""
	}
	v, err := ev.Evaluate(expr, data)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// extractObject evaluates expr against data and re-decodes an object result into out.
func extractObject(ev JMESPathEvaluator, expr string, data any, out any) bool {
	if strings.TrimSpace(expr) == "" {
		return false
	}
	v, err := ev.Evaluate(expr, data)
	if err != nil {
		return false
	}
	if _, ok := v.(map[string]any); !ok {
		return false
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}
