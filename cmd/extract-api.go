package main

// schemas

// request/response bodies for the extraction and conversion endpoints.
// field tags and subfield codes are as defined by the MARC 21 line format.

// ExtractRequest holds the contents of an extraction request as parsed
// from JSON.
type ExtractRequest struct {
	Marc     string                 `json:"marc"`               // line-format document text
	Tag      string                 `json:"tag"`                // 3-character field tag
	Subfield string                 `json:"subfield,omitempty"` // optional 1-character subfield code
	Options  map[string]interface{} `json:"options,omitempty"`  // loose display options (see extractOptions)
}

// extractOptions is the typed form of the loose options map in an
// extraction request.
type extractOptions struct {
	Titleize bool `json:"titleize"` // title-case values for display
	Labels   bool `json:"labels"`   // attach a localized label for the requested tag
	Limit    int  `json:"limit"`    // cap on emitted values; 0 falls back to the configured default
}

// ExtractRecord groups the values extracted from a single record.
type ExtractRecord struct {
	Index  int      `json:"index"`            // 0-based record position within the document
	Values []string `json:"values,omitempty"` // matched values, in field order
}

// ExtractDebug is an arbitrary set of key-value pairs of debugging info
// for an extraction result. The client can request this via the "debug"
// query parameter.
type ExtractDebug struct {
	RequestID string `json:"request_id"`
}

// ExtractResponse contains the full response to an extraction request.
type ExtractResponse struct {
	Tag         string          `json:"tag"`
	Subfield    string          `json:"subfield,omitempty"`
	Label       string          `json:"label,omitempty"` // localized tag label, when requested
	RecordCount int             `json:"record_count"`    // records scanned
	ValueCount  int             `json:"value_count"`     // values emitted
	Records     []ExtractRecord `json:"records,omitempty"`
	Values      []string        `json:"values,omitempty"` // flat value list, document order
	ElapsedMS   int64           `json:"elapsed_ms,omitempty"`
	Debug       *ExtractDebug   `json:"debug,omitempty"`
}

// ConvertRequest holds the contents of a conversion request. The
// payload is base64-encoded when it is binary MARC (the input for
// "to_line", the output for "to_binary").
type ConvertRequest struct {
	Data      string `json:"data"`
	Direction string `json:"direction"`           // "to_line" or "to_binary"
	SourceID  string `json:"source_id,omitempty"` // caller-supplied identifier for the originating document
}

// ConvertResponse contains the full response to a conversion request.
// SourceID is echoed back so the caller can associate the converted
// artifact with its originating document.
type ConvertResponse struct {
	Data      string `json:"data"`
	Direction string `json:"direction"`
	SourceID  string `json:"source_id,omitempty"`
	ElapsedMS int64  `json:"elapsed_ms,omitempty"`
}

// TagLabel pairs a well-known field tag with its localized display label.
type TagLabel struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
}

// TagLabels contains the full response to a tag label listing request.
type TagLabels struct {
	Tags []TagLabel `json:"tags"`
}
