package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

const maxClassifyBody = 1 << 20

// classifyRequest carries either one hand or a list of hands.
type classifyRequest struct {
	Landmarks []detector.Point2D   `json:"landmarks"`
	Hands     [][]detector.Point2D `json:"hands"`
}

type classifyResponse struct {
	gesture.Result
	Hands []gesture.Result `json:"hands,omitempty"`
}

// ClassifyHandler labels landmark sets posted as JSON.
type ClassifyHandler struct {
	classifier *gesture.Classifier
}

// NewClassifyHandler creates a handler backed by c.
func NewClassifyHandler(c *gesture.Classifier) *ClassifyHandler {
	return &ClassifyHandler{classifier: c}
}

// ServeHTTP handles POST /api/classify.
func (h *ClassifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req classifyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxClassifyBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	hands, err := req.poses()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.classify(hands))
}

// classify mirrors the live pipeline: the last hand decides the label and
// an empty list means no hand was seen.
func (h *ClassifyHandler) classify(hands []detector.Pose) classifyResponse {
	resp := classifyResponse{Result: gesture.Result{Label: gesture.LabelNoHand}}
	for _, pose := range hands {
		res := h.classifier.Analyze(pose)
		resp.Hands = append(resp.Hands, res)
		resp.Result = res
	}
	return resp
}

func (req classifyRequest) poses() ([]detector.Pose, error) {
	var hands [][]detector.Point2D
	switch {
	case req.Hands != nil:
		hands = req.Hands
	case req.Landmarks != nil:
		hands = [][]detector.Point2D{req.Landmarks}
	default:
		return nil, fmt.Errorf("landmarks or hands is required")
	}

	poses := make([]detector.Pose, len(hands))
	for i, points := range hands {
		if len(points) != detector.NumLandmarks {
			return nil, fmt.Errorf("hand %d: expected %d landmarks, got %d", i, detector.NumLandmarks, len(points))
		}
		poses[i] = detector.Pose(points)
	}
	return poses, nil
}
