package main

import (
	"fmt"
	"iter"
	"strings"
)

// MARC line-format (.mrk) extraction.
//
// A line-format document is a concatenation of records, each introduced
// by a leader line ("=LDR  ..."). A field is a line of the form
// "=TAG<content>"; a subfield is a run of characters introduced by
// "$<code>" within a field's content, terminated by the next "$" or the
// end of the content. The document is treated as an immutable text
// buffer; all values below are derived from it on each call.

const leaderMarker = "=LDR"
const subfieldDelimiter = byte('$')
const subfieldJoiner = "; "

// recordSpan addresses one record's text as [start, end) offsets into
// the document. Spans are disjoint, ordered, and contiguous.
type recordSpan struct {
	start int
	end   int
}

type malformedTagError struct {
	tag string
}

func (e *malformedTagError) Error() string {
	return fmt.Sprintf("malformed field tag: [%s] (must be exactly 3 characters)", e.tag)
}

type malformedSubfieldCodeError struct {
	code string
}

func (e *malformedSubfieldCodeError) Error() string {
	return fmt.Sprintf("malformed subfield code: [%s] (must be exactly 1 character)", e.code)
}

func validateTag(tag string) error {
	if len(tag) != 3 {
		return &malformedTagError{tag: tag}
	}

	return nil
}

func validateSubfieldCode(code string) error {
	if len(code) != 1 {
		return &malformedSubfieldCodeError{code: code}
	}

	return nil
}

// lineStartIndex returns the offset of the first occurrence of marker
// anchored to the start of a line, at or after the given position, or
// -1 if there is no such occurrence.
func lineStartIndex(doc string, marker string, from int) int {
	for from <= len(doc)-len(marker) {
		pos := strings.Index(doc[from:], marker)
		if pos == -1 {
			return -1
		}

		pos += from

		if pos == 0 || doc[pos-1] == '\n' {
			return pos
		}

		from = pos + 1
	}

	return -1
}

// locateRecords lazily yields the span of each record in the document,
// in ascending offset order. A record begins at a leader line and ends
// immediately before the next leader line, or at the end of the
// document. A document with no leader lines yields nothing.
func locateRecords(doc string) iter.Seq[recordSpan] {
	return func(yield func(recordSpan) bool) {
		start := lineStartIndex(doc, leaderMarker, 0)

		for start != -1 {
			next := lineStartIndex(doc, leaderMarker, start+1)

			end := len(doc)
			if next != -1 {
				end = next
			}

			if yield(recordSpan{start: start, end: end}) == false {
				return
			}

			start = next
		}
	}
}

// matchFields returns the content of every field line bearing the given
// tag within the record span, in line order. Repeated tags produce
// repeated entries, never merged entries. Content is everything on the
// line after the tag, with the trailing newline excluded. A record with
// no matching fields produces an empty list, not an error.
func matchFields(doc string, span recordSpan, tag string) ([]string, error) {
	if err := validateTag(tag); err != nil {
		return nil, err
	}

	marker := "=" + tag

	var contents []string

	pos := span.start
	for pos < span.end {
		line := doc[pos:span.end]
		if nl := strings.IndexByte(line, '\n'); nl != -1 {
			line = line[:nl]
		}

		if strings.HasPrefix(line, marker) {
			contents = append(contents, line[len(marker):])
		}

		pos += len(line) + 1
	}

	return contents, nil
}

// splitSubfield extracts every occurrence of the given subfield code
// from a field's content. Multiple occurrences are joined in order with
// "; ". The boolean result distinguishes "code not present" from a
// present but zero-length value (a delimiter+code pair immediately
// followed by another delimiter or the end of the content).
func splitSubfield(fieldContent string, code string) (string, bool, error) {
	if err := validateSubfieldCode(code); err != nil {
		return "", false, err
	}

	marker := string(subfieldDelimiter) + code

	var values []string

	pos := 0
	for {
		idx := strings.Index(fieldContent[pos:], marker)
		if idx == -1 {
			break
		}

		valStart := pos + idx + len(marker)

		valEnd := len(fieldContent)
		if next := strings.IndexByte(fieldContent[valStart:], subfieldDelimiter); next != -1 {
			valEnd = valStart + next
		}

		values = append(values, fieldContent[valStart:valEnd])

		pos = valEnd
	}

	if values == nil {
		return "", false, nil
	}

	return strings.Join(values, subfieldJoiner), true, nil
}

// extractByRecord validates its arguments up front, then lazily yields
// one record's span and matched values per resumption, preserving
// record order and within-record field order. A cooperative host can
// interleave other work between resumptions, and cancels the traversal
// by simply ceasing to resume it; no resources are held across yields.
//
// With an empty subfield code, values are the raw field contents. With
// a subfield code, each field contributes its combined subfield value;
// fields in which the code does not occur contribute nothing, while a
// present zero-length occurrence contributes an empty string.
//
// The returned sequence is a pure function of its inputs: it is finite,
// and ranging over it repeatedly yields identical results.
func extractByRecord(doc string, tag string, code string) (iter.Seq2[recordSpan, []string], error) {
	if err := validateTag(tag); err != nil {
		return nil, err
	}

	if code != "" {
		if err := validateSubfieldCode(code); err != nil {
			return nil, err
		}
	}

	seq := func(yield func(recordSpan, []string) bool) {
		for span := range locateRecords(doc) {
			// tag and code were validated above; errors cannot occur here
			fields, _ := matchFields(doc, span, tag)

			var values []string

			for _, content := range fields {
				if code == "" {
					values = append(values, content)
					continue
				}

				value, found, _ := splitSubfield(content, code)
				if found == false {
					continue
				}

				values = append(values, value)
			}

			if yield(span, values) == false {
				return
			}
		}
	}

	return seq, nil
}

// extract is the flat form of extractByRecord: one value per matched
// field across the whole document, in document order.
func extract(doc string, tag string, code string) (iter.Seq[string], error) {
	byRecord, err := extractByRecord(doc, tag, code)
	if err != nil {
		return nil, err
	}

	seq := func(yield func(string) bool) {
		for _, values := range byRecord {
			for _, value := range values {
				if yield(value) == false {
					return
				}
			}
		}
	}

	return seq, nil
}
