package stubserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"GuardVision/result"
)

// DefaultPrediction is the canned body the stub answers with: one
// detection of a leaf blower. Handy as a known fixture in tests.
func DefaultPrediction() result.Prediction {
	return result.Prediction{
		Detections: []result.Detection{
			{
				ClassID:    3,
				Label:      "leaf_blower",
				Confidence: 0.989,
				Box:        [4]float64{112.4, 86.1, 501.7, 430.2},
			},
		},
		Count: 1,
	}
}

// New returns a gin engine that stands in for the containerized
// inference service: POST /predict takes a multipart image and answers
// with the given prediction, GET /healthz reports readiness.
func New(pred result.Prediction) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/predict", func(c *gin.Context) {
		if _, err := c.FormFile("file"); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, pred)
	})
	return r
}
