package suggest

import (
	"encoding/json"
	"strings"
)

// ExtractJSON locates the JSON payload embedded in a raw agent response.
// Agents tend to wrap their answer in a markdown code fence and surround it
// with prose, so the fence content is preferred when one is present, and
// the widest bracketed span wins inside the chosen scope.
func ExtractJSON(raw string) (string, error) {
	if fenced, ok := fencedContent(raw); ok {
		if span, ok := bracketSpan(fenced); ok {
			return span, nil
		}
	}
	if span, ok := bracketSpan(raw); ok {
		return span, nil
	}
	return "", newFailure(KindExtractionFailed, raw, ErrExtractionFailed)
}

// fencedContent returns the body of the first json-labeled markdown code
// fence, falling back to the first fence of any label, with the fence
// markers and label removed.
func fencedContent(raw string) (string, bool) {
	if body, ok := fenceBody(raw, true); ok {
		return body, true
	}
	return fenceBody(raw, false)
}

// fenceBody scans raw for the first complete code fence. When jsonOnly is
// set, fences whose info string is not "json" are skipped.
func fenceBody(raw string, jsonOnly bool) (string, bool) {
	rest := raw
	for {
		open := strings.Index(rest, "```")
		if open < 0 {
			return "", false
		}
		body := rest[open+3:]
		closing := strings.Index(body, "```")
		if closing < 0 {
			return "", false
		}
		rest = body[closing+3:]
		body = body[:closing]

		label := body
		if nl := strings.IndexByte(label, '\n'); nl >= 0 {
			label = label[:nl]
		}
		label = strings.TrimSpace(label)
		if jsonOnly && label != "json" {
			continue
		}
		body = strings.TrimPrefix(strings.TrimLeft(body, " \t"), "json")
		return strings.TrimSpace(body), true
	}
}

// bracketSpan returns the widest [...] or {...} region in text. The span
// starts at the earliest opening bracket that has a matching closer, and
// runs to the last matching closer, so prose around the payload is dropped.
func bracketSpan(text string) (string, bool) {
	best := -1
	bestEnd := -1
	for _, pair := range [...][2]byte{{'[', ']'}, {'{', '}'}} {
		start := strings.IndexByte(text, pair[0])
		if start < 0 {
			continue
		}
		end := strings.LastIndexByte(text, pair[1])
		if end <= start {
			continue
		}
		if best < 0 || start < best {
			best, bestEnd = start, end
		}
	}
	if best < 0 {
		return "", false
	}
	return text[best : bestEnd+1], true
}

// Normalize parses jsonText and shapes it into a Batch. A JSON list is
// returned as-is; a single mapping is wrapped into a one-element list; any
// other JSON type, and invalid JSON, is a malformed payload.
func Normalize(jsonText string) (Batch, error) {
	data := []byte(jsonText)

	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, newFailure(KindMalformedPayload, jsonText, err)
	}

	switch probe.(type) {
	case []any:
		var batch Batch
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, newFailure(KindMalformedPayload, jsonText, err)
		}
		return batch, nil
	case map[string]any:
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, newFailure(KindMalformedPayload, jsonText, err)
		}
		return Batch{rec}, nil
	default:
		return nil, newFailure(KindMalformedPayload, jsonText, ErrMalformedPayload)
	}
}

// ParseResponse runs extraction and normalization on a raw agent response.
func ParseResponse(raw string) (Batch, error) {
	span, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}
	batch, err := Normalize(span)
	if err != nil {
		// Keep the full response, not just the span, for inspection.
		if f, ok := err.(*Failure); ok {
			f.Raw = raw
		}
		return nil, err
	}
	return batch, nil
}
