package result

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document holds one decoded prediction response. The body is whatever
// JSON the service returned, unchanged; nothing here interprets the
// detection schema.
type Document struct {
	body any
}

// Decode parses a response body into a Document. A body that is not
// valid JSON is an error and no Document is produced.
func Decode(raw []byte) (*Document, error) {
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode prediction body: %w", err)
	}
	return &Document{body: body}, nil
}

// Body returns the decoded JSON value.
func (d *Document) Body() any {
	return d.body
}

// Indent reserializes the document with four-space indentation.
// encoding/json writes map keys in sorted order, so the output is
// byte-stable across runs for the same body.
func (d *Document) Indent() ([]byte, error) {
	return json.MarshalIndent(d.body, "", "    ")
}

// WriteFile writes the indented form to path, replacing any previous
// content. Results never accumulate across runs.
func (d *Document) WriteFile(path string) error {
	data, err := d.Indent()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write result file: %w", err)
	}
	return nil
}

var confidenceKeys = []string{"confidence", "score", "probability"}

// MaxConfidence walks a decoded document and returns the highest
// confidence it can find, or 0 when there is none. It checks a
// top-level "detections" list first, then a plain "confidence" field,
// then a "predictions" list, so it copes with the response shapes the
// common detection servers produce.
func MaxConfidence(doc any) float64 {
	obj, ok := doc.(map[string]any)
	if !ok {
		return 0
	}
	if items, ok := obj["detections"].([]any); ok {
		return maxIn(items)
	}
	if v, ok := asFloat(obj["confidence"]); ok {
		return v
	}
	if items, ok := obj["predictions"].([]any); ok {
		return maxIn(items)
	}
	return 0
}

func maxIn(items []any) float64 {
	var max float64
	for _, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, key := range confidenceKeys {
			if v, ok := asFloat(rec[key]); ok && v > max {
				max = v
			}
		}
	}
	return max
}

func asFloat(v any) (float64, bool) {
	// json.Unmarshal into any always yields float64 for numbers
	n, ok := v.(float64)
	return n, ok
}
