package main

import (
	"errors"
	"reflect"
	"testing"
)

//
// record scanner tests
//

func collectSpans(doc string) []recordSpan {
	var spans []recordSpan

	for span := range locateRecords(doc) {
		spans = append(spans, span)
	}

	return spans
}

func collectValues(doc string, tag string, code string) ([]string, error) {
	seq, err := extract(doc, tag, code)
	if err != nil {
		return nil, err
	}

	var values []string

	for value := range seq {
		values = append(values, value)
	}

	return values, nil
}

func TestLocateRecordsNoLeaders(t *testing.T) {
	docs := []string{
		"",
		"\n",
		"no leader lines here\njust text\n",
		"x=LDR  00000\n", // leader marker not at line start
	}

	for _, doc := range docs {
		if spans := collectSpans(doc); len(spans) != 0 {
			t.Fatalf("Expected no spans for doc [%s], got %v\n", doc, spans)
		}
	}
}

func TestLocateRecordsSingleLeader(t *testing.T) {
	doc := "=LDR  00000cam\n=001  12345\n=245  10$aSome Title\n"

	spans := collectSpans(doc)

	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d\n", len(spans))
	}

	expected := recordSpan{start: 0, end: len(doc)}
	if spans[0] != expected {
		t.Fatalf("Expected %v, got %v\n", expected, spans[0])
	}
}

func TestLocateRecordsSpanProperties(t *testing.T) {
	// scanning may begin mid-document; text before the first leader is not part of any record
	prefix := "junk before the first record\n"
	doc := prefix +
		"=LDR  00000cam\n=001  r1\n" +
		"=LDR  00000cam\n=001  r2\n" +
		"=LDR  00000cam\n=001  r3\n"

	spans := collectSpans(doc)

	if len(spans) != 3 {
		t.Fatalf("Expected 3 spans, got %d\n", len(spans))
	}

	if spans[0].start != len(prefix) {
		t.Fatalf("Expected first span to start at %d, got %d\n", len(prefix), spans[0].start)
	}

	// spans are ordered, disjoint, and contiguous, covering [first leader, end of document)
	for i, span := range spans {
		if span.start >= span.end {
			t.Fatalf("Expected nonempty span, got %v\n", span)
		}

		if i > 0 && span.start != spans[i-1].end {
			t.Fatalf("Expected span %d to begin where span %d ends, got %v after %v\n", i, i-1, span, spans[i-1])
		}
	}

	if spans[len(spans)-1].end != len(doc) {
		t.Fatalf("Expected final span to end at %d, got %d\n", len(doc), spans[len(spans)-1].end)
	}
}

func TestLocateRecordsEarlyStop(t *testing.T) {
	doc := "=LDR  a\n=LDR  b\n=LDR  c\n"

	count := 0
	for range locateRecords(doc) {
		count++
		if count == 2 {
			break
		}
	}

	if count != 2 {
		t.Fatalf("Expected traversal to stop after 2 spans, got %d\n", count)
	}
}

//
// field matcher tests
//

func TestMatchFieldsMalformedTag(t *testing.T) {
	doc := "=LDR  00000\n=245  10$aTitle\n"
	span := recordSpan{start: 0, end: len(doc)}

	for _, tag := range []string{"", "24", "2455"} {
		_, err := matchFields(doc, span, tag)

		var tagErr *malformedTagError
		if errors.As(err, &tagErr) == false {
			t.Fatalf("Expected malformed tag error for [%s], got %v\n", tag, err)
		}
	}
}

func TestMatchFieldsRepeatedTags(t *testing.T) {
	doc := "=LDR  00000\n=650  0$aHistory\n=245  10$aTitle\n=650  0$aFiction\n"
	span := recordSpan{start: 0, end: len(doc)}

	fields, err := matchFields(doc, span, "650")
	if err != nil {
		t.Fatalf("Expected no error, got %v\n", err)
	}

	expected := []string{"  0$aHistory", "  0$aFiction"}
	if reflect.DeepEqual(fields, expected) == false {
		t.Fatalf("Expected %v, got %v\n", expected, fields)
	}
}

func TestMatchFieldsNoMatch(t *testing.T) {
	doc := "=LDR  00000\n=245  10$aTitle\n"
	span := recordSpan{start: 0, end: len(doc)}

	fields, err := matchFields(doc, span, "650")
	if err != nil {
		t.Fatalf("Expected no error, got %v\n", err)
	}

	if len(fields) != 0 {
		t.Fatalf("Expected no fields, got %v\n", fields)
	}
}

func TestMatchFieldsNoTrailingNewline(t *testing.T) {
	doc := "=LDR  00000\n=245  10$aTitle"
	span := recordSpan{start: 0, end: len(doc)}

	fields, err := matchFields(doc, span, "245")
	if err != nil {
		t.Fatalf("Expected no error, got %v\n", err)
	}

	expected := []string{"  10$aTitle"}
	if reflect.DeepEqual(fields, expected) == false {
		t.Fatalf("Expected %v, got %v\n", expected, fields)
	}
}

//
// subfield splitter tests
//

func TestSplitSubfieldMalformedCode(t *testing.T) {
	for _, code := range []string{"", "ab"} {
		_, _, err := splitSubfield("  10$aTitle", code)

		var codeErr *malformedSubfieldCodeError
		if errors.As(err, &codeErr) == false {
			t.Fatalf("Expected malformed subfield code error for [%s], got %v\n", code, err)
		}
	}
}

func TestSplitSubfieldAbsent(t *testing.T) {
	value, found, err := splitSubfield("  10$aTitle of the Book", "z")
	if err != nil {
		t.Fatalf("Expected no error, got %v\n", err)
	}

	if found == true {
		t.Fatalf("Expected no match, got [%s]\n", value)
	}
}

func TestSplitSubfieldSingle(t *testing.T) {
	value, found, err := splitSubfield("  10$aTitle of the Book$bA Subtitle", "a")
	if err != nil {
		t.Fatalf("Expected no error, got %v\n", err)
	}

	if found == false {
		t.Fatalf("Expected a match\n")
	}

	expected := "Title of the Book"
	if value != expected {
		t.Fatalf("Expected [%s], got [%s]\n", expected, value)
	}
}

func TestSplitSubfieldRepeated(t *testing.T) {
	value, found, err := splitSubfield(" 0$aHistory$aFiction", "a")
	if err != nil {
		t.Fatalf("Expected no error, got %v\n", err)
	}

	if found == false {
		t.Fatalf("Expected a match\n")
	}

	expected := "History; Fiction"
	if value != expected {
		t.Fatalf("Expected [%s], got [%s]\n", expected, value)
	}
}

func TestSplitSubfieldEmptyValue(t *testing.T) {
	// a delimiter+code pair immediately followed by another delimiter
	// or the end of the content is a present, zero-length value --
	// distinct from the code not appearing at all

	cases := []string{
		"  10$a$bSubtitle", // followed by another delimiter
		"  10$bSubtitle$a", // truncated at end of content
	}

	for _, content := range cases {
		value, found, err := splitSubfield(content, "a")
		if err != nil {
			t.Fatalf("Expected no error for [%s], got %v\n", content, err)
		}

		if found == false {
			t.Fatalf("Expected a match for [%s]\n", content)
		}

		if value != "" {
			t.Fatalf("Expected empty value for [%s], got [%s]\n", content, value)
		}
	}
}

//
// extraction driver tests
//

func TestExtractSingleRecord(t *testing.T) {
	doc := "=LDR  00000\n=245  10$aTitle of the Book$bA Subtitle\n"

	fields, err := collectValues(doc, "245", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v\n", err)
	}

	expectedFields := []string{"  10$aTitle of the Book$bA Subtitle"}
	if reflect.DeepEqual(fields, expectedFields) == false {
		t.Fatalf("Expected %v, got %v\n", expectedFields, fields)
	}

	titles, err := collectValues(doc, "245", "a")
	if err != nil {
		t.Fatalf("Expected no error, got %v\n", err)
	}

	expectedTitles := []string{"Title of the Book"}
	if reflect.DeepEqual(titles, expectedTitles) == false {
		t.Fatalf("Expected %v, got %v\n", expectedTitles, titles)
	}

	subtitles, err := collectValues(doc, "245", "b")
	if err != nil {
		t.Fatalf("Expected no error, got %v\n", err)
	}

	expectedSubtitles := []string{"A Subtitle"}
	if reflect.DeepEqual(subtitles, expectedSubtitles) == false {
		t.Fatalf("Expected %v, got %v\n", expectedSubtitles, subtitles)
	}
}

func TestExtractPreservesDocumentOrder(t *testing.T) {
	doc := "=LDR  00000\n=650  0$aHistory$aFiction\n=650  0$aArt\n" +
		"=LDR  00000\n=650  0$aScience\n"

	values, err := collectValues(doc, "650", "a")
	if err != nil {
		t.Fatalf("Expected no error, got %v\n", err)
	}

	expected := []string{"History; Fiction", "Art", "Science"}
	if reflect.DeepEqual(values, expected) == false {
		t.Fatalf("Expected %v, got %v\n", expected, values)
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	values, err := collectValues("no leaders here\n", "245", "a")
	if err != nil {
		t.Fatalf("Expected no error, got %v\n", err)
	}

	if len(values) != 0 {
		t.Fatalf("Expected no values, got %v\n", values)
	}
}

func TestExtractValidatesBeforeScanning(t *testing.T) {
	doc := "=LDR  00000\n=245  10$aTitle\n"

	if _, err := extract(doc, "24", ""); err == nil {
		t.Fatalf("Expected malformed tag error\n")
	}

	if _, err := extract(doc, "245", "ab"); err == nil {
		t.Fatalf("Expected malformed subfield code error\n")
	}
}

func TestExtractSkipsFieldsWithoutSubfield(t *testing.T) {
	// the second 245 has no $a at all and contributes nothing; the
	// third has an empty $a and contributes an empty string

	doc := "=LDR  00000\n=245  10$aFirst\n" +
		"=LDR  00000\n=245  10$bNo Code Here\n" +
		"=LDR  00000\n=245  10$a$bEmpty Code\n"

	values, err := collectValues(doc, "245", "a")
	if err != nil {
		t.Fatalf("Expected no error, got %v\n", err)
	}

	expected := []string{"First", ""}
	if reflect.DeepEqual(values, expected) == false {
		t.Fatalf("Expected %v, got %v\n", expected, values)
	}
}

func TestExtractIsRestartable(t *testing.T) {
	doc := "=LDR  00000\n=650  0$aHistory\n=LDR  00000\n=650  0$aFiction\n"

	seq, err := extract(doc, "650", "a")
	if err != nil {
		t.Fatalf("Expected no error, got %v\n", err)
	}

	var first []string
	for value := range seq {
		first = append(first, value)
	}

	var second []string
	for value := range seq {
		second = append(second, value)
	}

	if reflect.DeepEqual(first, second) == false {
		t.Fatalf("Expected identical sequences, got %v then %v\n", first, second)
	}
}

func TestExtractByRecordGrouping(t *testing.T) {
	doc := "=LDR  00000\n=650  0$aHistory$aFiction\n" +
		"=LDR  00000\n=650  0$aScience\n=650  0$aArt\n"

	byRecord, err := extractByRecord(doc, "650", "a")
	if err != nil {
		t.Fatalf("Expected no error, got %v\n", err)
	}

	var groups [][]string
	for _, values := range byRecord {
		groups = append(groups, values)
	}

	expected := [][]string{
		{"History; Fiction"},
		{"Science", "Art"},
	}

	if reflect.DeepEqual(groups, expected) == false {
		t.Fatalf("Expected %v, got %v\n", expected, groups)
	}
}

func TestExtractByRecordEarlyStop(t *testing.T) {
	doc := "=LDR  00000\n=001  a\n=LDR  00000\n=001  b\n=LDR  00000\n=001  c\n"

	byRecord, err := extractByRecord(doc, "001", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v\n", err)
	}

	// cancellation is cooperative: simply stop resuming the sequence
	count := 0
	for range byRecord {
		count++
		if count == 1 {
			break
		}
	}

	if count != 1 {
		t.Fatalf("Expected traversal to stop after 1 record, got %d\n", count)
	}
}
