package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"
)

type serviceResponse struct {
	status int         // http status code
	data   interface{} // data to return as JSON
	err    error       // error, if any
}

type extractContext struct {
	svc    *serviceContext
	client *clientContext
	req    ExtractRequest
	opts   extractOptions
}

func (e *extractContext) init(svc *serviceContext, c *clientContext) {
	e.svc = svc
	e.client = c
}

func (e *extractContext) log(format string, args ...interface{}) {
	e.client.log(format, args...)
}

func (e *extractContext) err(format string, args ...interface{}) {
	e.client.err(format, args...)
}

func (e *extractContext) parseRequest() error {
	if err := e.client.ginCtx.ShouldBindJSON(&e.req); err != nil {
		e.log("ShouldBindJSON() failed: %s", err.Error())
		return fmt.Errorf("invalid extraction request")
	}

	// the options block is open-ended json.
	// we cannot read it directly into a struct without rejecting clients
	// that send options we do not know about, so we read it in as
	// map[string]interface{} and decode the parts we recognize.

	if e.req.Options == nil {
		return nil
	}

	cfg := &mapstructure.DecoderConfig{
		Metadata:   nil,
		Result:     &e.opts,
		TagName:    "json",
		ZeroFields: true,
	}

	dec, _ := mapstructure.NewDecoder(cfg)

	if mapDecErr := dec.Decode(e.req.Options); mapDecErr != nil {
		e.log("mapstructure.Decode() failed: %s", mapDecErr.Error())
		return fmt.Errorf("invalid extraction options")
	}

	return nil
}

func (e *extractContext) handleExtractRequest() serviceResponse {
	if err := e.parseRequest(); err != nil {
		return serviceResponse{status: http.StatusBadRequest, err: err}
	}

	if e.client.opts.verbose == true {
		e.log("[EXTRACT] marc: [%s]", e.req.Marc)
	}

	e.log("[EXTRACT] tag: [%s]  subfield: [%s]  document size: %d", e.req.Tag, e.req.Subfield, len(e.req.Marc))

	byRecord, extractErr := extractByRecord(e.req.Marc, e.req.Tag, e.req.Subfield)
	if extractErr != nil {
		e.err("[EXTRACT] %s", extractErr.Error())
		return serviceResponse{status: http.StatusBadRequest, err: extractErr}
	}

	limit := e.opts.Limit
	if limit == 0 {
		limit = e.svc.config.Extract.DefaultLimit
	}

	res := ExtractResponse{
		Tag:      e.req.Tag,
		Subfield: e.req.Subfield,
	}

	if e.opts.Labels == true {
		res.Label = e.client.localizedTagLabel(e.svc, e.req.Tag)
	}

	// one record's worth of values is consumed per resumption; hitting
	// the value cap simply stops resuming the sequence

	capped := false

	for _, values := range byRecord {
		rec := ExtractRecord{Index: res.RecordCount}

		for _, value := range values {
			if limit > 0 && res.ValueCount >= limit {
				capped = true
				break
			}

			if e.opts.Titleize == true {
				value = e.svc.titleizer.titleize(value)
			}

			rec.Values = append(rec.Values, value)
			res.Values = append(res.Values, value)
			res.ValueCount++
		}

		if len(rec.Values) > 0 {
			res.Records = append(res.Records, rec)
		}

		res.RecordCount++

		if capped == true {
			break
		}
	}

	res.ElapsedMS = int64(time.Since(e.client.start) / time.Millisecond)

	if e.client.opts.debug == true {
		res.Debug = &ExtractDebug{RequestID: e.client.reqID}
	}

	e.log("[EXTRACT] records: %d  values: %d  elapsed: %d (ms)", res.RecordCount, res.ValueCount, res.ElapsedMS)

	return serviceResponse{status: http.StatusOK, data: res}
}
