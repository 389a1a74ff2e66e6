package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dgallion1/scriptcoach/internal/coach"
	"github.com/dgallion1/scriptcoach/internal/feedback"
)

type runner struct {
	coach    *coach.Coach
	opts     options
	maxBytes int64
	stdout   io.Writer
	stderr   io.Writer
}

type jsonItem struct {
	Path   string        `json:"path"`
	Result *coach.Result `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// reviewAll reviews files and prints the reports. It returns the process
// exit code: 1 if any file failed.
func (r *runner) reviewAll(ctx context.Context, files []string) int {
	if r.opts.prompt {
		return r.printPrompts(ctx, files)
	}

	reqs := make([]coach.Request, 0, len(files))
	items := make([]jsonItem, len(files))
	var slots []int
	for i, path := range files {
		items[i].Path = path
		data, err := r.read(path)
		if err != nil {
			items[i].Error = err.Error()
			continue
		}
		reqs = append(reqs, r.request(path, data))
		slots = append(slots, i)
	}
	for j, it := range r.coach.ReviewBatch(ctx, reqs) {
		if it.Err != nil {
			items[slots[j]].Error = it.Err.Error()
			continue
		}
		items[slots[j]].Result = it.Result
	}

	code := 0
	for _, it := range items {
		if it.Error != "" {
			code = 1
		}
	}

	if r.opts.asJSON {
		enc := json.NewEncoder(r.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			fmt.Fprintf(r.stderr, "coach: %v\n", err)
			return 1
		}
		return code
	}

	for i, it := range items {
		if len(items) > 1 {
			if i > 0 {
				fmt.Fprintln(r.stdout)
			}
			fmt.Fprintf(r.stdout, "== %s ==\n", it.Path)
		}
		if it.Error != "" {
			fmt.Fprintf(r.stderr, "%s: %s\n", it.Path, it.Error)
			continue
		}
		if it.Result.Truncated {
			fmt.Fprintf(r.stderr, "%s: truncated to %d characters\n", it.Path, it.Result.Characters)
		}
		fmt.Fprint(r.stdout, it.Result.Feedback)
	}
	return code
}

func (r *runner) printPrompts(ctx context.Context, files []string) int {
	code := 0
	for i, path := range files {
		data, err := r.read(path)
		if err == nil {
			var text string
			text, err = r.coach.ScriptText(ctx, filepath.Base(path), data)
			if err == nil {
				if i > 0 {
					fmt.Fprintln(r.stdout)
				}
				fmt.Fprintln(r.stdout, feedback.BuildPrompt(r.opts.speechType, r.opts.audience, feedback.ParseStyle(r.opts.style), text))
				continue
			}
		}
		fmt.Fprintf(r.stderr, "%s: %v\n", path, err)
		code = 1
	}
	return code
}

func (r *runner) request(path string, data []byte) coach.Request {
	return coach.Request{
		Filename:   filepath.Base(path),
		Data:       data,
		SpeechType: r.opts.speechType,
		Audience:   r.opts.audience,
		Style:      r.opts.style,
		Complexity: r.opts.complexity,
		Goal:       r.opts.goal,
		RubricMode: r.opts.rubric,
	}
}

func (r *runner) read(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if r.maxBytes > 0 && info.Size() > r.maxBytes {
		return nil, fmt.Errorf("file exceeds max size (%d bytes)", r.maxBytes)
	}
	return os.ReadFile(path)
}
