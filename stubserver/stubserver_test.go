package stubserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GuardVision/client"
	"GuardVision/result"
)

func TestStubServer(t *testing.T) {
	srv := httptest.NewServer(New(DefaultPrediction()))
	defer srv.Close()

	t.Run("Test healthz", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Test predict without file", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/predict", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Test predict returns canned body", func(t *testing.T) {
		img := filepath.Join(t.TempDir(), "test.jpg")
		require.NoError(t, os.WriteFile(img, []byte("fake image"), 0644))

		doc, err := client.New(srv.URL+"/predict").Predict(context.Background(), img)
		require.NoError(t, err)
		assert.InDelta(t, 0.989, result.MaxConfidence(doc.Body()), 0.0001)

		body := doc.Body().(map[string]any)
		dets := body["detections"].([]any)
		require.Len(t, dets, 1)
		det := dets[0].(map[string]any)
		assert.Equal(t, "leaf_blower", det["label"])
		assert.InDelta(t, 3, det["class_id"], 0.0001)
		assert.Len(t, det["box"], 4)
	})
}
