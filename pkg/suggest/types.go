package suggest

// Record is one suggested diagnostic code mapped to an excerpt of the input
// note. Every field is optional: the agent omits what it cannot fill and the
// review surface tolerates the gaps.
type Record struct {
	Extract     string `json:"extract,omitempty"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Batch is the ordered list of Records produced by one agent call. It is
// always a list, even when the agent replied with a single object.
type Batch []Record

// Codes returns the non-empty code fields in order.
func (b Batch) Codes() []string {
	codes := make([]string, 0, len(b))
	for _, rec := range b {
		if rec.Code != "" {
			codes = append(codes, rec.Code)
		}
	}
	return codes
}
