package types

// SubmitRequest carries one clinician note. SessionId is optional; a new
// session is opened when it is absent.
type SubmitRequest struct {
	SessionId string `json:"sessionId,optional"`
	Note      string `json:"note"`
}

// RecordView mirrors one suggested code record. Absent fields are omitted,
// matching the tolerance of the review grid.
type RecordView struct {
	Extract     string `json:"extract,omitempty"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	Url         string `json:"url,omitempty"`
}

// RowView is one line of the review grid.
type RowView struct {
	Index     int        `json:"index"`
	Record    RecordView `json:"record"`
	Validated bool       `json:"validated"`
}

// SubmitResponse reports the outcome of one submission. Status is "ok" or a
// terminal failure kind; Raw carries the agent text for manual inspection
// when parsing failed.
type SubmitResponse struct {
	SessionId    string    `json:"sessionId"`
	SubmissionId string    `json:"submissionId"`
	Status       string    `json:"status"`
	Message      string    `json:"message,omitempty"`
	Raw          string    `json:"raw,omitempty"`
	Rows         []RowView `json:"rows,omitempty"`
}

type SessionRequest struct {
	SessionId string `path:"id"`
}

type SessionView struct {
	SessionId    string    `json:"sessionId"`
	SubmissionId string    `json:"submissionId"`
	Rows         []RowView `json:"rows"`
}

type ValidateRequest struct {
	SessionId string `path:"id"`
	Index     int    `path:"index"`
	Validated bool   `json:"validated"`
}

type RecapRequest struct {
	SessionId string `path:"id"`
}

// RecapResponse lists the code field of every validated row, in order.
type RecapResponse struct {
	SessionId string   `json:"sessionId"`
	Codes     []string `json:"codes"`
}

type DispatchRequest struct {
	SessionId string `path:"id"`
	Target    string `json:"target,optional"`
}

// DispatchResponse is the receipt of the stubbed hand-off to the target
// hospital information system.
type DispatchResponse struct {
	SessionId string   `json:"sessionId"`
	Target    string   `json:"target"`
	Codes     []string `json:"codes"`
	Status    string   `json:"status"`
	ReceiptId string   `json:"receiptId"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
