package result

// Detection is one predicted object instance as the inference service
// reports it.
type Detection struct {
	ClassID    int        `json:"class_id"`
	Label      string     `json:"label"`
	Confidence float64    `json:"confidence"`
	Box        [4]float64 `json:"box"`
}

// Prediction is the documented response shape of the /predict endpoint.
// The client never decodes into it; documents stay opaque end to end.
// It exists for the stub server and for tests that need a concrete body.
type Prediction struct {
	Detections []Detection `json:"detections"`
	Count      int         `json:"count"`
}
