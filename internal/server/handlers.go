package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gzrlab/gzrsteg/pkg/errors"
	"github.com/gzrlab/gzrsteg/pkg/imageio"
	"github.com/gzrlab/gzrsteg/pkg/steg"
	"github.com/gzrlab/gzrsteg/pkg/tribonacci"
)

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type decodeResponse struct {
	ID          string  `json:"id"`
	Message     string  `json:"message"`
	PayloadBits int     `json:"payload_bits"`
	BitDensity  float64 `json:"bit_density"`
	Pattern111  int     `json:"pattern_111"`
	ValidGZR    bool    `json:"valid_gzr"`
}

type capacityResponse struct {
	Width           int `json:"width"`
	Height          int `json:"height"`
	CapacityBits    int `json:"capacity_bits"`
	CapacityBytes   int `json:"capacity_bytes"`
	MaxMessageChars int `json:"max_message_chars"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Service: "gzrsteg"})
}

// handleEncode accepts a multipart form with an "image" file and a "message"
// field and responds with the stego PNG.
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	grid, ok := s.formGrid(w, r)
	if !ok {
		return
	}

	message := r.FormValue("message")
	if message == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "message field is required"))
		return
	}

	res, err := s.runner.EncodeGrid(r.Context(), grid, message)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="stego.png"`)
	w.Header().Set("X-Encode-ID", res.ID)
	w.Header().Set("X-Payload-Bits", fmt.Sprintf("%d", res.Stats.PayloadBits))
	w.Header().Set("X-Capacity-Bytes", fmt.Sprintf("%d", res.Stats.CapacityBytes))
	if err := imageio.Encode(w, res.Stego); err != nil {
		s.logger.Error("stego write failed", "id", requestID(r.Context()), "err", err)
	}
}

// handleDecode accepts a multipart form with an "image" file and responds
// with the recovered message.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	grid, ok := s.formGrid(w, r)
	if !ok {
		return
	}

	res, err := s.runner.DecodeGrid(r.Context(), grid)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, decodeResponse{
		ID:          res.ID,
		Message:     res.Message,
		PayloadBits: res.Stats.PayloadBits,
		BitDensity:  res.Stats.BitDensity,
		Pattern111:  res.Stats.Pattern111,
		ValidGZR:    res.Stats.ValidGZR,
	})
}

// handleCapacity accepts a multipart form with an "image" file and responds
// with its carrying capacity.
func (s *Server) handleCapacity(w http.ResponseWriter, r *http.Request) {
	grid, ok := s.formGrid(w, r)
	if !ok {
		return
	}

	ch, err := steg.NewChannel(grid)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	bits := ch.CapacityBits()
	maxChars := 0
	if bits > steg.HeaderBits {
		maxChars = (bits - steg.HeaderBits) / tribonacci.SlotWidth
	}

	writeJSON(w, http.StatusOK, capacityResponse{
		Width:           grid.W,
		Height:          grid.H,
		CapacityBits:    bits,
		CapacityBytes:   ch.CapacityBytes(),
		MaxMessageChars: maxChars,
	})
}

// formGrid parses the multipart form and decodes the "image" file into a
// grid. On failure it writes the error response and returns ok=false.
func (s *Server) formGrid(w http.ResponseWriter, r *http.Request) (*steg.Grid, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid multipart form"))
		return nil, false
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "image file is required"))
		return nil, false
	}
	defer file.Close()

	grid, err := imageio.Decode(file)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return grid, true
}

// httpStatus maps error codes to HTTP status codes.
func httpStatus(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupportedCodePoint, errors.ErrCodeMalformedHeader:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeCapacityExceeded:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := httpStatus(code)
	if status >= 500 {
		s.logger.Error("request failed", "id", requestID(r.Context()), "err", err)
	} else {
		s.logger.Debug("request rejected", "id", requestID(r.Context()), "err", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: string(code)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
