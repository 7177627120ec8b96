package result

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBody = `{"detections":[{"class_id":3,"label":"leaf_blower","confidence":0.989,"box":[112.4,86.1,501.7,430.2]}],"count":1}`

func TestDocument_All(t *testing.T) {
	t.Run("Test Decode invalid body", func(t *testing.T) {
		_, err := Decode([]byte("<html>not json</html>"))
		assert.Error(t, err)
	})

	t.Run("Test round trip", func(t *testing.T) {
		doc, err := Decode([]byte(sampleBody))
		require.NoError(t, err)
		out, err := doc.Indent()
		require.NoError(t, err)

		var reparsed any
		require.NoError(t, json.Unmarshal(out, &reparsed))
		assert.Equal(t, doc.Body(), reparsed)
	})

	t.Run("Test indent format", func(t *testing.T) {
		doc, err := Decode([]byte(sampleBody))
		require.NoError(t, err)
		out, err := doc.Indent()
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(out), "\n    \"count\""), "expected four-space indent, got:\n%s", out)

		// stable output: same document renders the same bytes every time
		again, err := doc.Indent()
		require.NoError(t, err)
		assert.Equal(t, out, again)
	})

	t.Run("Test WriteFile overwrites", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "result.json")

		first, err := Decode([]byte(sampleBody))
		require.NoError(t, err)
		require.NoError(t, first.WriteFile(path))

		second, err := Decode([]byte(`{"detections":[],"count":0}`))
		require.NoError(t, err)
		require.NoError(t, second.WriteFile(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, second.Body(), got)
	})

	t.Run("Test WriteFile unwritable path", func(t *testing.T) {
		doc, err := Decode([]byte(sampleBody))
		require.NoError(t, err)
		err = doc.WriteFile(filepath.Join(t.TempDir(), "no_such_dir", "result.json"))
		assert.Error(t, err)
	})
}

func TestMaxConfidence(t *testing.T) {
	cases := []struct {
		name string
		body string
		want float64
	}{
		{"detections with confidence", sampleBody, 0.989},
		{"detections with score", `{"detections":[{"score":0.4},{"score":0.7}]}`, 0.7},
		{"detections with probability", `{"detections":[{"probability":0.55}]}`, 0.55},
		{"top level confidence", `{"confidence":0.31}`, 0.31},
		{"predictions list", `{"predictions":[{"confidence":0.2},{"score":0.9}]}`, 0.9},
		{"empty detections", `{"detections":[],"count":0}`, 0},
		{"no recognizable keys", `{"foo":"bar"}`, 0},
		{"not an object", `[1,2,3]`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var doc any
			require.NoError(t, json.Unmarshal([]byte(tc.body), &doc))
			assert.InDelta(t, tc.want, MaxConfidence(doc), 0.0001)
		})
	}
}
