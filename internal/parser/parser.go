// Package parser extracts structured records from completions that are
// nominally a JSON array but may arrive wrapped in a fenced code block.
// Parsing never fails outward: unparseable text degrades to a single
// placeholder record that carries the raw completion.
package parser

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

const fence = "```"

// Record is one structured item. Values are whatever the JSON held.
type Record map[string]any

// Schema describes how to degrade a completion that could not be parsed.
type Schema struct {
	// Name labels the schema in logs
	Name string

	// Primary is the field that receives the raw text in a degraded record
	Primary string

	// Defaults are the placeholder values of every other field
	Defaults Record
}

// degrade builds the single placeholder record for raw.
func (s Schema) degrade(raw string) Record {
	rec := make(Record, len(s.Defaults)+1)
	for k, v := range s.Defaults {
		if list, ok := v.([]string); ok {
			v = append([]string(nil), list...)
		}
		rec[k] = v
	}
	rec[s.Primary] = raw
	return rec
}

// QuizSchema degrades to a question holding the raw text with placeholder options.
var QuizSchema = Schema{
	Name:    "quiz",
	Primary: "question",
	Defaults: Record{
		"options":     []string{"A", "B", "C", "D"},
		"correct":     "A",
		"explanation": "Could not parse quiz.",
	},
}

// FlashcardSchema degrades to a single card whose back holds the raw text.
func FlashcardSchema(topic string) Schema {
	return Schema{
		Name:     "flashcards",
		Primary:  "back",
		Defaults: Record{"front": topic},
	}
}

// Result is the tagged outcome of Parse.
type Result struct {
	// Records is never empty
	Records []Record

	// Degraded reports that Records holds a single placeholder record
	Degraded bool

	// Raw is the completion text as received
	Raw string
}

// Parse strips an enclosing code fence and parses the remainder as a JSON
// array of objects. On failure it returns a single degraded record built
// from schema. Records are returned verbatim without field validation;
// null elements are dropped, and an array holding nothing else degrades.
func Parse(raw string, schema Schema) Result {
	records, err := decodeArray(StripFences(raw))
	if err != nil || len(records) == 0 {
		return Result{
			Records:  []Record{schema.degrade(raw)},
			Degraded: true,
			Raw:      raw,
		}
	}

	return Result{Records: records, Raw: raw}
}

// StripFences removes one leading fence line (with any language tag) and
// everything from the last closing fence onward.
func StripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, fence) {
		return text
	}

	if _, rest, ok := strings.Cut(text, "\n"); ok {
		text = rest
	} else {
		text = strings.TrimPrefix(text, fence)
	}

	if i := strings.LastIndex(text, fence); i >= 0 {
		text = text[:i]
	}

	return strings.TrimSpace(text)
}

var errTrailingData = errors.New("unexpected data after JSON array")

func decodeArray(text string) ([]Record, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}

	// null elements carry nothing to render
	kept := records[:0]
	for _, r := range records {
		if r != nil {
			kept = append(kept, r)
		}
	}

	return kept, nil
}
