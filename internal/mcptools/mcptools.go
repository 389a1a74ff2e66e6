// Package mcptools exposes script review over the Model Context Protocol.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dgallion1/scriptcoach/internal/coach"
	"github.com/dgallion1/scriptcoach/internal/feedback"
	"github.com/dgallion1/scriptcoach/internal/observe"
	"github.com/dgallion1/scriptcoach/internal/parser"
)

// Tool names.
const (
	ToolAnalyze = "coach_analyze"
	ToolPrompt  = "coach_prompt"
	ToolFormats = "coach_formats"
)

// inlineFilename is used for scripts passed as text without a filename.
const inlineFilename = "script.txt"

// Tools serves the coaching tools. Reading scripts from local paths is only
// allowed when AllowFiles is set, which the stdio server does and the HTTP
// endpoint does not.
type Tools struct {
	Coach      *coach.Coach
	Metrics    *observe.Metrics // optional
	AllowFiles bool
	MaxBytes   int64 // limit for files read from disk; <= 0 means 10MiB
}

// NewServer returns an MCP server with all tools registered.
func NewServer(t *Tools, version string) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: "scriptcoach", Version: version}, nil)
	t.Register(srv)
	return srv
}

// Register adds the coaching tools to srv.
func (t *Tools) Register(srv *mcp.Server) {
	srv.AddTool(&mcp.Tool{
		Name:        ToolAnalyze,
		Description: "Review a speech, monologue or debate script and return coaching feedback with text statistics and a rubric.",
		InputSchema: inputSchema(map[string]any{
			"text":        prop("string", "Script text. Either text or path is required."),
			"path":        prop("string", "Path of a script file (.txt, .docx, .pdf, ...). Only available over stdio."),
			"filename":    prop("string", "Filename for inline text; its extension selects the parser. Default script.txt."),
			"speech_type": enumProp("Speech type.", speechTypeNames()...),
			"audience":    prop("string", "Who the script is performed for."),
			"style":       enumProp("Coaching voice. Default balanced.", "balanced", "strict", "supportive"),
			"complexity":  enumProp("Reading level of the feedback. Default standard.", "standard", "simplified", "esl"),
			"goal":        prop("string", "confidence (default) or competition; empty for no framing."),
			"rubric_mode": enumProp("Include rubric scores. Default on.", "on", "off"),
		}, []string{"speech_type", "audience"}),
	}, t.instrument(ToolAnalyze, t.handleAnalyze))

	srv.AddTool(&mcp.Tool{
		Name:        ToolPrompt,
		Description: "Build a coaching brief for a script that can be handed to a human coach or another assistant.",
		InputSchema: inputSchema(map[string]any{
			"text":        prop("string", "Script text."),
			"speech_type": prop("string", "Speech type, echoed into the brief."),
			"audience":    prop("string", "Intended audience."),
			"style":       enumProp("Coaching voice. Default balanced.", "balanced", "strict", "supportive"),
		}, []string{"text", "speech_type", "audience"}),
	}, t.instrument(ToolPrompt, t.handlePrompt))

	srv.AddTool(&mcp.Tool{
		Name:        ToolFormats,
		Description: "List the file extensions scripts can be read from.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}, t.instrument(ToolFormats, t.handleFormats))
}

type analyzeArgs struct {
	Text       string  `json:"text"`
	Path       string  `json:"path"`
	Filename   string  `json:"filename"`
	SpeechType string  `json:"speech_type"`
	Audience   string  `json:"audience"`
	Style      string  `json:"style"`
	Complexity string  `json:"complexity"`
	Goal       *string `json:"goal"`
	RubricMode string  `json:"rubric_mode"`
}

func (t *Tools) handleAnalyze(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args analyzeArgs
	if err := decodeArgs(req, &args); err != nil {
		return errorResult(err), nil
	}

	creq := coach.Request{
		SpeechType: args.SpeechType,
		Audience:   args.Audience,
		Style:      args.Style,
		Complexity: args.Complexity,
		Goal:       coach.DefaultGoal,
		RubricMode: args.RubricMode,
	}
	if args.Goal != nil {
		creq.Goal = *args.Goal
	}

	switch {
	case args.Path != "":
		if !t.AllowFiles {
			return errorResult(errors.New("reading files by path is disabled on this server; pass text instead")), nil
		}
		data, err := t.readFile(args.Path)
		if err != nil {
			return errorResult(err), nil
		}
		creq.Filename, creq.Data = filepath.Base(args.Path), data
	case args.Text != "":
		creq.Filename = args.Filename
		if creq.Filename == "" {
			creq.Filename = inlineFilename
		}
		creq.Data = []byte(args.Text)
	}

	res, err := t.Coach.Review(ctx, creq)
	if err != nil {
		return errorResult(err), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: res.Feedback}},
	}, nil
}

type promptArgs struct {
	Text       string `json:"text"`
	SpeechType string `json:"speech_type"`
	Audience   string `json:"audience"`
	Style      string `json:"style"`
}

func (t *Tools) handlePrompt(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args promptArgs
	if err := decodeArgs(req, &args); err != nil {
		return errorResult(err), nil
	}
	if strings.TrimSpace(args.Text) == "" {
		return errorResult(errors.New("text is required")), nil
	}
	brief := feedback.BuildPrompt(
		strings.TrimSpace(args.SpeechType),
		strings.TrimSpace(args.Audience),
		feedback.ParseStyle(args.Style),
		args.Text,
	)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: brief}},
	}, nil
}

func (t *Tools) handleFormats(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(map[string]any{"extensions": parser.Extensions()})
	if err != nil {
		return errorResult(fmt.Errorf("marshal: %w", err)), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}

// instrument counts each call by tool and status.
func (t *Tools) instrument(name string, h mcp.ToolHandler) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := h(ctx, req)
		if t.Metrics != nil {
			status := "ok"
			if err != nil || (res != nil && res.IsError) {
				status = "error"
			}
			t.Metrics.RecordToolCall(ctx, name, status)
		}
		return res, err
	}
}

func (t *Tools) readFile(path string) ([]byte, error) {
	limit := t.MaxBytes
	if limit <= 0 {
		limit = 10 << 20
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("script exceeds max size (%d bytes)", limit)
	}
	return data, nil
}

func decodeArgs(req *mcp.CallToolRequest, v any) error {
	if len(req.Params.Arguments) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Params.Arguments, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func errorResult(err error) *mcp.CallToolResult {
	var res mcp.CallToolResult
	res.SetError(err)
	return &res
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func prop(typ, desc string) map[string]any {
	return map[string]any{"type": typ, "description": desc}
}

func enumProp(desc string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": desc, "enum": values}
}

func speechTypeNames() []string {
	names := make([]string, len(feedback.SpeechTypes))
	for i, st := range feedback.SpeechTypes {
		names[i] = string(st)
	}
	return names
}
