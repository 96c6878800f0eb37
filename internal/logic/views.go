package logic

import (
	"clinicode-api/internal/session"
	"clinicode-api/internal/types"
	"clinicode-api/pkg/suggest"
)

func rowViews(state *session.ReviewState) []types.RowView {
	rows := state.Rows()
	out := make([]types.RowView, len(rows))
	for i, row := range rows {
		out[i] = types.RowView{
			Index:     i,
			Record:    recordView(row.Record),
			Validated: row.Validated,
		}
	}
	return out
}

func recordView(rec suggest.Record) types.RecordView {
	return types.RecordView{
		Extract:     rec.Extract,
		Code:        rec.Code,
		Description: rec.Description,
		Url:         rec.URL,
	}
}

// failureMessage maps a terminal pipeline failure to the message shown to
// the clinician.
func failureMessage(kind suggest.FailureKind) string {
	switch kind {
	case suggest.KindNoResponse:
		return "The coding agent did not respond: the call failed, timed out, or the credentials were rejected."
	case suggest.KindExtractionFailed:
		return "No JSON payload could be located in the agent response. The raw text is attached for inspection."
	case suggest.KindMalformedPayload:
		return "The agent response contained a payload that is not a valid list of code records. The raw text is attached for inspection."
	default:
		return "The submission failed."
	}
}
