package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Request parameter limits
const (
	minDimension = 16
	maxDimension = 2000
	maxBounces   = 16
)

// Server handles web requests for the raytracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// SceneRequest identifies a preset scene and how to render it
type SceneRequest struct {
	Scene      string `json:"scene"`      // Preset name (e.g., "default")
	Width      int    `json:"width"`      // Image width
	Height     int    `json:"height"`     // Image height
	MaxBounces int    `json:"maxBounces"` // Reflection/refraction budget
}

// Stats represents render statistics
type Stats struct {
	TotalPixels  int   `json:"totalPixels"`
	Batches      int   `json:"batches"`
	Workers      int   `json:"workers"`
	IndexRebuilt bool  `json:"indexRebuilt"`
	ElapsedMs    int64 `json:"elapsedMs"`
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the preset scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(scene.ListScenes())
}

// parseSceneRequest parses the scene parameters shared by every endpoint
func (s *Server) parseSceneRequest(r *http.Request) (*SceneRequest, error) {
	query := r.URL.Query()
	req := &SceneRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 225, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.MaxBounces, err = parseIntParam(query, "maxBounces", integrator.DefaultMaxBounces, 0, maxBounces); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 1920*1080 && req.MaxBounces > 8 {
		log.Printf("Render warning: Large image with a deep bounce budget may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// requireIntParam parses a mandatory integer parameter
func requireIntParam(values url.Values, key string, min, max int) (int, error) {
	if values.Get(key) == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	return parseIntParam(values, key, 0, min, max)
}

// createScene builds the requested preset at the requested resolution
func (s *Server) createScene(req *SceneRequest) (*scene.Scene, error) {
	return scene.NewSceneByName(req.Scene, req.Width, req.Height)
}

// writeJSONError writes an error response with the given status
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
