package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	defaultKind      = KindTaskCompletion
	defaultTitle     = "Report"
	defaultTimeFrame = "Undefined"
	defaultVariant   = "undefined"
)

type payload struct {
	ReportType *string                      `json:"report_type"`
	Filename   string                       `json:"filename"`
	TimeFrame  string                       `json:"timeFrame"`
	Title      string                       `json:"report_title"`
	FilterType string                       `json:"filter_type"`
	Data       []map[string]json.RawMessage `json:"data"`
}

// ReadRequest decodes a JSON job description from r and applies the
// defaults for every optional field. ext is the extension used for the
// default filename.
func ReadRequest(r io.Reader, ext string) (Request, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return Request{}, fmt.Errorf("%w: failed to read input: %v", ErrInput, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return Request{}, fmt.Errorf("%w: no input data provided", ErrInput)
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return Request{}, fmt.Errorf("%w: malformed JSON: %v", ErrInput, err)
	}

	kind := defaultKind
	if p.ReportType != nil {
		kind, err = ParseKind(*p.ReportType)
		if err != nil {
			return Request{}, err
		}
	}

	if len(p.Data) == 0 {
		return Request{}, fmt.Errorf("%w: no data provided for %s report", ErrValidation, kind)
	}

	records := make([]RawRecord, 0, len(p.Data))
	for i, item := range p.Data {
		if item == nil {
			return Request{}, fmt.Errorf("%w: data[%d]: not an object", ErrInput, i)
		}
		rec, err := toRawRecord(item)
		if err != nil {
			return Request{}, fmt.Errorf("%w: data[%d]: %v", ErrInput, i, err)
		}
		records = append(records, rec)
	}

	req := Request{
		Kind:      kind,
		Filename:  p.Filename,
		Title:     orDefault(p.Title, defaultTitle),
		TimeFrame: orDefault(p.TimeFrame, defaultTimeFrame),
		Variant:   orDefault(p.FilterType, defaultVariant),
		Records:   records,
	}
	if req.Filename == "" {
		req.Filename = DefaultFilename(kind, ext)
	}
	return req, nil
}

// DefaultFilename is the output name used when the request does not set one.
func DefaultFilename(kind Kind, ext string) string {
	return fmt.Sprintf("%s_report.%s", kind, strings.TrimPrefix(ext, "."))
}

// toRawRecord keeps strings as they are and writes other scalars in their
// JSON text form. A null value counts as a missing field.
func toRawRecord(item map[string]json.RawMessage) (RawRecord, error) {
	rec := make(RawRecord, len(item))
	for key, raw := range item {
		trimmed := bytes.TrimSpace(raw)
		switch {
		case bytes.Equal(trimmed, []byte("null")):
			continue
		case len(trimmed) > 0 && trimmed[0] == '"':
			var s string
			if err := json.Unmarshal(trimmed, &s); err != nil {
				return nil, fmt.Errorf("field %q: %v", key, err)
			}
			rec[key] = s
		case len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '['):
			return nil, fmt.Errorf("field %q: nested values are not supported", key)
		default:
			rec[key] = string(trimmed)
		}
	}
	return rec, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
