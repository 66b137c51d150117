package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// RenderResult is the final SSE payload of a streamed render
type RenderResult struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Stats     Stats  `json:"stats"`
}

// renderOutcome carries a finished render back to the request goroutine
type renderOutcome struct {
	pixels renderer.PixelMap
	stats  renderer.RenderStats
}

// handleRender renders one frame and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseSceneRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := renderer.DefaultRenderConfig()
	config.MaxBounces = req.MaxBounces
	pixels, stats := renderer.NewRaytracer(sceneObj, config, nil).Render()

	var buf bytes.Buffer
	if err := png.Encode(&buf, renderer.ToImage(pixels, req.Width, req.Height)); err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStream renders one frame, streaming log lines as "console"
// events and the finished image as a "complete" event
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	req, err := s.parseSceneRequest(r)
	if err != nil {
		s.sendSSEEvent(w, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		s.sendSSEEvent(w, "error", err.Error())
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()

	config := renderer.DefaultRenderConfig()
	config.MaxBounces = req.MaxBounces
	raytracer := renderer.NewRaytracer(sceneObj, config, webLogger)

	done := make(chan renderOutcome, 1)
	go func() {
		pixels, stats := raytracer.Render()
		done <- renderOutcome{pixels: pixels, stats: stats}
	}()

	for {
		select {
		case <-ctx.Done():
			// Client disconnected; the render finishes in the background
			return
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)
		case outcome := <-done:
			s.drainConsole(w, consoleChan)
			s.sendResult(w, req, outcome)
			return
		}
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

func (s *Server) sendConsoleMessage(w http.ResponseWriter, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.sendSSEEvent(w, "console", string(data))
}

// drainConsole forwards messages logged before the render finished
func (s *Server) drainConsole(w http.ResponseWriter, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)
		default:
			return
		}
	}
}

func (s *Server) sendResult(w http.ResponseWriter, req *SceneRequest, outcome renderOutcome) {
	imageData, err := s.imageToBase64PNG(renderer.ToImage(outcome.pixels, req.Width, req.Height))
	if err != nil {
		s.sendSSEEvent(w, "error", fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	result := RenderResult{
		ImageData: imageData,
		Width:     req.Width,
		Height:    req.Height,
		Stats: Stats{
			TotalPixels:  outcome.stats.TotalPixels,
			Batches:      outcome.stats.Batches,
			Workers:      outcome.stats.Workers,
			IndexRebuilt: outcome.stats.IndexRebuilt,
			ElapsedMs:    outcome.stats.Elapsed.Milliseconds(),
		},
	}
	data, err := json.Marshal(result)
	if err != nil {
		s.sendSSEEvent(w, "error", err.Error())
		return
	}
	s.sendSSEEvent(w, "complete", string(data))
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}
