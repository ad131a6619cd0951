package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"meeting-archaeologist/internal/extraction"
)

// RootPath is the path reported for violations of the top-level value.
const RootPath = "result"

const (
	msgRequired     = "field required"
	msgObject       = "input should be a valid object"
	msgList         = "input should be a valid list"
	msgString       = "input should be a valid string"
	msgNumber       = "input should be a valid number"
	msgFinite       = "input should be a finite number"
	msgConfidenceLo = "input should be greater than or equal to 0"
	msgConfidenceHi = "input should be less than or equal to 1"
	msgInteger      = "input should be a valid integer"
)

// Validate checks a decoded JSON value against the extraction contract.
// On success it returns the typed result and no violations. Otherwise the
// result is empty and violations list every problem in document order.
// Unknown fields, including any meta supplied by the model, are ignored.
func Validate(candidate any) (extraction.Result, extraction.Violations) {
	v := &validator{}

	root, ok := candidate.(map[string]any)
	if !ok {
		v.add(RootPath, msgObject)
		return extraction.Result{}, v.violations
	}

	res := extraction.NewResult()
	res.Decisions = v.decisions(root)
	res.Tasks = v.tasks(root)
	res.Noise = v.noise(root)

	if len(v.violations) > 0 {
		return extraction.Result{}, v.violations
	}
	return res, nil
}

type validator struct {
	violations extraction.Violations
}

func (v *validator) add(path, message string) {
	v.violations = append(v.violations, extraction.Violation{Path: path, Message: message})
}

// list returns the items of an optional top-level array. A missing key is an
// empty list; null or any non-array is a violation.
func (v *validator) list(root map[string]any, key string) ([]any, bool) {
	raw, present := root[key]
	if !present {
		return nil, true
	}
	items, ok := raw.([]any)
	if !ok {
		v.add(key, msgList)
		return nil, false
	}
	return items, true
}

func (v *validator) object(path string, raw any) (map[string]any, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		v.add(path, msgObject)
		return nil, false
	}
	return obj, true
}

func (v *validator) decisions(root map[string]any) []extraction.Decision {
	items, ok := v.list(root, "decisions")
	if !ok {
		return nil
	}
	out := make([]extraction.Decision, 0, len(items))
	for i, raw := range items {
		base := fmt.Sprintf("decisions[%d]", i)
		obj, ok := v.object(base, raw)
		if !ok {
			continue
		}
		out = append(out, extraction.Decision{
			Statement:  v.text(obj, base, "statement"),
			Confidence: v.confidence(obj, base),
		})
	}
	return out
}

func (v *validator) tasks(root map[string]any) []extraction.Task {
	items, ok := v.list(root, "tasks")
	if !ok {
		return nil
	}
	out := make([]extraction.Task, 0, len(items))
	for i, raw := range items {
		base := fmt.Sprintf("tasks[%d]", i)
		obj, ok := v.object(base, raw)
		if !ok {
			continue
		}
		out = append(out, extraction.Task{
			Title:       v.text(obj, base, "title"),
			Description: v.text(obj, base, "description"),
			Priority:    extraction.Priority(v.enum(obj, base, "priority", priorityLiterals())),
			Complexity:  v.complexity(obj, base),
			Domain:      extraction.Domain(v.enum(obj, base, "domain", domainLiterals())),
			OwnerHint:   v.optionalText(obj, base, "owner_hint"),
			Confidence:  v.confidence(obj, base),
			Reasoning:   v.optionalText(obj, base, "reasoning"),
		})
	}
	return out
}

func (v *validator) noise(root map[string]any) []extraction.NoiseItem {
	items, ok := v.list(root, "noise")
	if !ok {
		return nil
	}
	out := make([]extraction.NoiseItem, 0, len(items))
	for i, raw := range items {
		base := fmt.Sprintf("noise[%d]", i)
		obj, ok := v.object(base, raw)
		if !ok {
			continue
		}
		out = append(out, extraction.NoiseItem{
			Text:   v.text(obj, base, "text"),
			Reason: v.text(obj, base, "reason"),
		})
	}
	return out
}

// text reads a required string field. Empty strings are valid values.
func (v *validator) text(obj map[string]any, base, field string) string {
	path := base + "." + field
	raw, present := obj[field]
	if !present {
		v.add(path, msgRequired)
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		v.add(path, msgString)
		return ""
	}
	return s
}

// optionalText reads a string that may be absent or null.
func (v *validator) optionalText(obj map[string]any, base, field string) *string {
	raw, present := obj[field]
	if !present || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		v.add(base+"."+field, msgString)
		return nil
	}
	return &s
}

func (v *validator) enum(obj map[string]any, base, field string, allowed []string) string {
	path := base + "." + field
	raw, present := obj[field]
	if !present {
		v.add(path, msgRequired)
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		v.add(path, msgString)
		return ""
	}
	for _, a := range allowed {
		if s == a {
			return s
		}
	}
	v.add(path, "input should be "+quoteList(allowed))
	return ""
}

func (v *validator) confidence(obj map[string]any, base string) float64 {
	path := base + ".confidence"
	raw, present := obj["confidence"]
	if !present {
		v.add(path, msgRequired)
		return 0
	}
	f, ok := toFloat(raw)
	if !ok {
		v.add(path, msgNumber)
		return 0
	}
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		v.add(path, msgFinite)
	case f < 0:
		v.add(path, msgConfidenceLo)
	case f > 1:
		v.add(path, msgConfidenceHi)
	}
	return f
}

func (v *validator) complexity(obj map[string]any, base string) extraction.Complexity {
	path := base + ".complexity"
	raw, present := obj["complexity"]
	if !present {
		v.add(path, msgRequired)
		return 0
	}
	f, ok := toFloat(raw)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		v.add(path, msgInteger)
		return 0
	}
	c := extraction.Complexity(f)
	if float64(c) != f || !c.Valid() {
		v.add(path, "input should be "+joinList(complexityLiterals()))
		return 0
	}
	return c
}

// toFloat accepts JSON numbers only. Strings holding digits are rejected.
func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			// Range errors still carry a usable value: ±Inf on overflow,
			// reported later as non-finite, or 0 on underflow.
			var numErr *strconv.NumError
			return f, errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange)
		}
		return f, true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func priorityLiterals() []string {
	out := make([]string, 0, 4)
	for _, p := range extraction.Priorities() {
		out = append(out, string(p))
	}
	return out
}

func domainLiterals() []string {
	out := make([]string, 0, 8)
	for _, d := range extraction.Domains() {
		out = append(out, string(d))
	}
	return out
}

func complexityLiterals() []string {
	out := make([]string, 0, 6)
	for _, c := range extraction.Complexities() {
		out = append(out, fmt.Sprintf("%d", c))
	}
	return out
}

// quoteList renders 'a', 'b' or 'c'.
func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return joinList(quoted)
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
}
