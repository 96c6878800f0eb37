package suggest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "fenced json array",
			raw:  "```json\n[{\"code\":\"I10\"}]\n```",
			want: `[{"code":"I10"}]`,
		},
		{
			name: "fenced array with surrounding prose",
			raw:  "Here are the codes:\n```json\n[{\"code\":\"I10\"}]\n```\nLet me know if you need more.",
			want: `[{"code":"I10"}]`,
		},
		{
			name: "unlabeled fence",
			raw:  "```\n[{\"code\":\"I10\"}]\n```",
			want: `[{"code":"I10"}]`,
		},
		{
			name: "bare array without fence",
			raw:  `The agent replied [{"code":"I10"}] as expected`,
			want: `[{"code":"I10"}]`,
		},
		{
			name: "bare object without fence",
			raw:  `prefix {"code":"I10","description":"Hypertension"} suffix`,
			want: `{"code":"I10","description":"Hypertension"}`,
		},
		{
			name: "object before array picks earliest opener",
			raw:  `{"items":[{"code":"I10"}]}`,
			want: `{"items":[{"code":"I10"}]}`,
		},
		{
			name: "json fence preferred over earlier labeled fence",
			raw:  "```python\n[1]\n```\n```json\n[{\"code\":\"I10\"}]\n```",
			want: `[{"code":"I10"}]`,
		},
		{
			name: "json fence preferred over earlier unlabeled fence",
			raw:  "```\n[1]\n```\n```json\n[{\"code\":\"I10\"}]\n```",
			want: `[{"code":"I10"}]`,
		},
		{
			name: "lone non-json fence still used",
			raw:  "```text\n[{\"code\":\"I10\"}]\n```",
			want: `[{"code":"I10"}]`,
		},
		{
			name: "fence without brackets falls back to full text",
			raw:  "```json\nnothing here\n```\n[{\"code\":\"E11\"}]",
			want: `[{"code":"E11"}]`,
		},
		{
			name:    "no brackets at all",
			raw:     "the model refused to answer",
			wantErr: true,
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "unclosed bracket",
			raw:     "result: [only an opener",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, ErrExtractionFailed)
				require.Equal(t, KindExtractionFailed, KindOf(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("list stays a list", func(t *testing.T) {
		batch, err := Normalize(`[{"code":"I10"}]`)
		require.NoError(t, err)
		require.Equal(t, Batch{{Code: "I10"}}, batch)
	})

	t.Run("bare object is wrapped", func(t *testing.T) {
		batch, err := Normalize(`{"code":"I10"}`)
		require.NoError(t, err)
		require.Equal(t, Batch{{Code: "I10"}}, batch)
	})

	t.Run("empty list is a valid empty batch", func(t *testing.T) {
		batch, err := Normalize(`[]`)
		require.NoError(t, err)
		require.Empty(t, batch)
	})

	t.Run("unknown keys are tolerated", func(t *testing.T) {
		batch, err := Normalize(`[{"code":"I10","confidence":0.9}]`)
		require.NoError(t, err)
		require.Equal(t, Batch{{Code: "I10"}}, batch)
	})

	t.Run("bare scalar is rejected", func(t *testing.T) {
		_, err := Normalize(`"hello"`)
		require.ErrorIs(t, err, ErrMalformedPayload)
		require.Equal(t, KindMalformedPayload, KindOf(err))
	})

	t.Run("number is rejected", func(t *testing.T) {
		_, err := Normalize(`42`)
		require.ErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("null is rejected", func(t *testing.T) {
		_, err := Normalize(`null`)
		require.ErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("invalid syntax is rejected", func(t *testing.T) {
		_, err := Normalize(`[{"code":`)
		require.ErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("list of scalars is rejected", func(t *testing.T) {
		_, err := Normalize(`["I10","E11"]`)
		require.ErrorIs(t, err, ErrMalformedPayload)
	})
}

func TestParseResponseEndToEnd(t *testing.T) {
	raw := "```json\n[{\"extract\":\"HTA\",\"code\":\"I10\",\"description\":\"Hypertension\"}]\n```"

	batch, err := ParseResponse(raw)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	require.Equal(t, "HTA", batch[0].Extract)
	require.Equal(t, "I10", batch[0].Code)
	require.Equal(t, "Hypertension", batch[0].Description)
	require.Empty(t, batch[0].URL)
}

func TestParseResponseKeepsRawForInspection(t *testing.T) {
	raw := "some prose {\"code\": } broken"

	_, err := ParseResponse(raw)
	require.ErrorIs(t, err, ErrMalformedPayload)
	require.Equal(t, raw, RawOf(err))
}
