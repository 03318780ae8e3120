package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/phrazzld/omnistudy/internal/generation"
	"github.com/phrazzld/omnistudy/internal/parser"
	"github.com/phrazzld/omnistudy/internal/service"
	"gopkg.in/yaml.v3"
)

type outputFormat string

// recordWriter prints one numbered record in text output.
type recordWriter func(w io.Writer, n int, r parser.Record)

const (
	outputText outputFormat = "text"
	outputJSON outputFormat = "json"
	outputYAML outputFormat = "yaml"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(s)); f {
	case outputText, outputJSON, outputYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid output format %q: must be text, json or yaml", s)
	}
}

type textOutput struct {
	Text     string `json:"text" yaml:"text"`
	Provider string `json:"provider" yaml:"provider"`
	Model    string `json:"model" yaml:"model"`
}

type recordsOutput struct {
	Records  []parser.Record `json:"records" yaml:"records"`
	Degraded bool            `json:"degraded" yaml:"degraded"`
	Raw      string          `json:"raw,omitempty" yaml:"raw,omitempty"`
	Provider string          `json:"provider" yaml:"provider"`
	Model    string          `json:"model" yaml:"model"`
}

type tierOutput struct {
	Provider   string   `json:"provider" yaml:"provider"`
	Configured bool     `json:"configured" yaml:"configured"`
	Models     []string `json:"models" yaml:"models"`
	MaxRetries int      `json:"max_retries" yaml:"max_retries"`
}

type providersOutput struct {
	Tiers           []tierOutput `json:"tiers" yaml:"tiers"`
	DefaultProvider string       `json:"default_provider,omitempty" yaml:"default_provider,omitempty"`
	DefaultModel    string       `json:"default_model,omitempty" yaml:"default_model,omitempty"`
}

// encode writes v as JSON or YAML. It reports false for text output.
func encode(w io.Writer, format outputFormat, v interface{}) (bool, error) {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return true, enc.Encode(v)
	default:
		return false, nil
	}
}

func writeText(w io.Writer, format outputFormat, result *service.TextResult) error {
	out := textOutput{Text: result.Text, Provider: result.Provider, Model: result.Model}
	if done, err := encode(w, format, out); done || err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%s\n\n[%s/%s]\n", out.Text, out.Provider, out.Model)
	return err
}

func writeRecords(w io.Writer, format outputFormat, result *service.RecordsResult, text recordWriter) error {
	out := recordsOutput{
		Records:  result.Records,
		Degraded: result.Degraded,
		Provider: result.Provider,
		Model:    result.Model,
	}
	if result.Degraded {
		out.Raw = result.Raw
	}
	if done, err := encode(w, format, out); done || err != nil {
		return err
	}

	if out.Degraded {
		fmt.Fprintf(w, "warning: the response was not a JSON array; showing it as one record\n\n")
	}
	for i, r := range out.Records {
		text(w, i+1, r)
	}
	_, err := fmt.Fprintf(w, "[%s/%s]\n", out.Provider, out.Model)
	return err
}

func writeQuestion(w io.Writer, n int, r parser.Record) {
	fmt.Fprintf(w, "%d. %v\n", n, r["question"])
	if options, ok := r["options"].([]any); ok {
		for _, o := range options {
			fmt.Fprintf(w, "   %v\n", o)
		}
	}
	fmt.Fprintf(w, "   Answer: %v\n", r["correct"])
	if e, ok := r["explanation"]; ok && e != "" {
		fmt.Fprintf(w, "   %v\n", e)
	}
	fmt.Fprintln(w)
}

func writeFlashcard(w io.Writer, n int, r parser.Record) {
	fmt.Fprintf(w, "%d. Front: %v\n   Back:  %v\n\n", n, r["front"], r["back"])
}

func writeProviders(w io.Writer, format outputFormat, status generation.Status) error {
	out := providersOutput{
		DefaultProvider: status.DefaultProvider,
		DefaultModel:    status.DefaultModel,
	}
	for _, t := range status.Tiers {
		out.Tiers = append(out.Tiers, tierOutput(t))
	}
	if done, err := encode(w, format, out); done || err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRIORITY\tPROVIDER\tCONFIGURED\tMAX RETRIES\tMODELS")
	for i, t := range out.Tiers {
		fmt.Fprintf(tw, "%d\t%s\t%t\t%d\t%s\n", i+1, t.Provider, t.Configured, t.MaxRetries, strings.Join(t.Models, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if out.DefaultProvider == "" {
		_, err := fmt.Fprintln(w, "\nNo AI provider configured. Add GROQ_API_KEY (recommended) or GEMINI_API_KEY.")
		return err
	}
	_, err := fmt.Fprintf(w, "\nFirst choice: %s/%s\n", out.DefaultProvider, out.DefaultModel)
	return err
}
