package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/scriptcoach/internal/coach"
)

// Form field names shared by the upload page and the JSON API.
const (
	fieldFile       = "scriptFile"
	fieldFiles      = "files"
	fieldSpeechType = "speechType"
	fieldAudience   = "audience"
	fieldStyle      = "style"
	fieldComplexity = "complexity"
	fieldGoal       = "goal"
	fieldRubricMode = "rubricMode"
)

// formOverhead is allowed on top of the file limit for the other fields and
// multipart framing.
const formOverhead = 1 << 20

// errTooLarge is returned by form readers when an upload exceeds
// MaxUploadBytes.
var errTooLarge = errors.New("upload too large")

// handleAnalyze serves the upload page. Every outcome is a {"feedback": ...}
// body so the page can show it as is.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := s.readReviewForm(w, r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, map[string]string{"feedback": err.Error()})
		return
	}

	res, err := s.coach.Review(r.Context(), req)
	if err != nil {
		status, msg := reviewError(err)
		writeJSON(w, status, map[string]string{"feedback": msg})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"feedback": res.Feedback})
}

// handleAPIAnalyze reviews one upload and returns the structured result.
func (s *Server) handleAPIAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := s.readReviewForm(w, r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		jsonError(w, err.Error(), status)
		return
	}

	res, err := s.coach.Review(r.Context(), req)
	if err != nil {
		writeReviewError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// batchEntry is one file of a batch response.
type batchEntry struct {
	Filename string        `json:"filename"`
	Result   *coach.Result `json:"result,omitempty"`
	Error    string        `json:"error,omitempty"`
	Kind     string        `json:"kind,omitempty"`
}

// handleBatchAnalyze reviews every file in the "files" field with the same
// options. Per-file failures are reported inline; the response is 200 as
// long as the form itself is valid.
func (s *Server) handleBatchAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*int64(max(1, s.cfg.MaxBatchFiles))+10*formOverhead)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			jsonError(w, "batch exceeds max size", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File[fieldFiles]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}
	if s.cfg.MaxBatchFiles > 0 && len(files) > s.cfg.MaxBatchFiles {
		jsonError(w, fmt.Sprintf("too many files: %d (max %d)", len(files), s.cfg.MaxBatchFiles), http.StatusBadRequest)
		return
	}

	base := s.formOptions(r)
	entries := make([]batchEntry, len(files))
	var reqs []coach.Request
	var slots []int
	for i, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		entries[i].Filename = filename

		data, err := s.readUpload(fh)
		if err != nil {
			entries[i].Error = err.Error()
			continue
		}
		req := base
		req.Filename, req.Data = filename, data
		reqs = append(reqs, req)
		slots = append(slots, i)
	}

	for j, item := range s.coach.ReviewBatch(r.Context(), reqs) {
		e := &entries[slots[j]]
		if item.Err != nil {
			_, e.Error = reviewError(item.Err)
			var cerr *coach.Error
			if errors.As(item.Err, &cerr) {
				e.Kind = cerr.Kind.String()
			}
			continue
		}
		e.Result = item.Result
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": entries})
}

// readReviewForm reads a single-file review form. A body that is not
// multipart is read as a plain form without a file, which the coach reports
// as a missing upload.
func (s *Server) readReviewForm(w http.ResponseWriter, r *http.Request) (coach.Request, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+formOverhead)

	if err := r.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return coach.Request{}, fmt.Errorf("%w: max %d bytes", errTooLarge, s.cfg.MaxUploadBytes)
		}
		return coach.Request{}, fmt.Errorf("invalid form: %w", err)
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	req := s.formOptions(r)
	if r.MultipartForm == nil {
		return req, nil
	}
	fhs := r.MultipartForm.File[fieldFile]
	if len(fhs) == 0 || fhs[0].Filename == "" {
		return req, nil
	}
	data, err := s.readUpload(fhs[0])
	if err != nil {
		return coach.Request{}, err
	}
	req.Filename, req.Data = sanitizeFilename(fhs[0].Filename), data
	return req, nil
}

// formOptions copies the option fields from a parsed form. The goal
// defaults to confidence only when the field is absent.
func (s *Server) formOptions(r *http.Request) coach.Request {
	req := coach.Request{
		SpeechType: r.FormValue(fieldSpeechType),
		Audience:   r.FormValue(fieldAudience),
		Style:      r.FormValue(fieldStyle),
		Complexity: r.FormValue(fieldComplexity),
		Goal:       coach.DefaultGoal,
		RubricMode: r.FormValue(fieldRubricMode),
	}
	if _, ok := r.Form[fieldGoal]; ok {
		req.Goal = r.FormValue(fieldGoal)
	}
	return req
}

func (s *Server) readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w: file exceeds max size (%d bytes)", errTooLarge, s.cfg.MaxUploadBytes)
	}
	return data, nil
}

// reviewError maps a review failure to a status and user-facing message.
func reviewError(err error) (int, string) {
	var cerr *coach.Error
	if errors.As(err, &cerr) {
		return cerr.Status(), cerr.Message
	}
	return http.StatusInternalServerError, fmt.Sprintf("Server error: %T: %v", err, err)
}

func writeReviewError(w http.ResponseWriter, err error) {
	status, msg := reviewError(err)
	body := map[string]string{"error": msg}
	var cerr *coach.Error
	if errors.As(err, &cerr) {
		body["kind"] = cerr.Kind.String()
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
