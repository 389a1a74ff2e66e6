package api

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/dgallion1/scriptcoach/internal/feedback"
	"github.com/dgallion1/scriptcoach/internal/parser"
)

type option struct {
	Value, Label string
}

type formPage struct {
	SpeechTypes  []option
	Styles       []option
	Complexities []option
	Accept       string
	MaxMB        int64
}

func (s *Server) handleGreeting(w http.ResponseWriter, r *http.Request) {
	s.render(w, "greeting.html", nil)
}

func (s *Server) handleFeedbackForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index.html", formPage{
		SpeechTypes: []option{
			{string(feedback.PublicSpeech), "Public speech"},
			{string(feedback.Monologue), "Monologue"},
			{string(feedback.Debate), "Debate"},
		},
		Styles: []option{
			{string(feedback.StyleBalanced), "Balanced"},
			{string(feedback.StyleStrict), "Strict"},
			{string(feedback.StyleSupportive), "Supportive"},
		},
		Complexities: []option{
			{string(feedback.ComplexityStandard), "Standard"},
			{string(feedback.ComplexitySimplified), "Simplified"},
			{string(feedback.ComplexityESL), "ESL"},
		},
		Accept: strings.Join(parser.Extensions(), ","),
		MaxMB:  s.cfg.MaxUploadBytes >> 20,
	})
}

// render executes a page into a buffer first so a template error becomes a
// clean 500.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error("render page", "page", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
