package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/rider-parser/internal/core"
	"github.com/joseph-ayodele/rider-parser/internal/entity"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type document struct {
	Name    string
	Outcome core.Outcome
}

// envelope is what gets printed for each document.
type envelope struct {
	File      string                  `json:"file" yaml:"file"`
	Source    string                  `json:"source" yaml:"source"`
	RequestID string                  `json:"requestId" yaml:"requestId"`
	Rider     *entity.StructuredRider `json:"rider" yaml:"rider"`
}

type renderer struct {
	format string
	json   *json.Encoder
	yaml   *yaml.Encoder
}

func newRenderer(w io.Writer, format string) *renderer {
	r := &renderer{format: format}
	switch format {
	case formatYAML:
		r.yaml = yaml.NewEncoder(w)
		r.yaml.SetIndent(2)
	default:
		r.json = json.NewEncoder(w)
		r.json.SetIndent("", "  ")
	}
	return r
}

func (r *renderer) render(d document) error {
	env := envelope{
		File:      d.Name,
		Source:    string(d.Outcome.Source),
		RequestID: d.Outcome.RequestID,
		Rider:     d.Outcome.Rider,
	}
	var err error
	if r.yaml != nil {
		err = r.yaml.Encode(env)
	} else {
		err = r.json.Encode(env)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", d.Name, err)
	}
	return nil
}

func (r *renderer) close() error {
	if r.yaml != nil {
		return r.yaml.Close()
	}
	return nil
}
