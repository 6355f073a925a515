package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os/exec"
	"time"
)

// external converter dialog. binary<->line conversion is delegated
// entirely to the configured converter binaries; this service never
// decodes binary MARC itself. payloads are piped through stdin/stdout.

const directionToLine = "to_line"
const directionToBinary = "to_binary"

var supportedDirections = []string{directionToLine, directionToBinary}

type converterContext struct {
	toLineBin   string
	toBinaryBin string
	timeout     int // seconds
}

type convertContext struct {
	svc    *serviceContext
	client *clientContext
	req    ConvertRequest
}

func (v *convertContext) init(svc *serviceContext, c *clientContext) {
	v.svc = svc
	v.client = c
}

func (v *convertContext) log(format string, args ...interface{}) {
	v.client.log(format, args...)
}

func (v *convertContext) err(format string, args ...interface{}) {
	v.client.err(format, args...)
}

func (v *convertContext) runConverter(bin string, input []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(v.svc.converter.timeout)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin)
	cmd.Stdin = bytes.NewReader(input)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsedMS := int64(time.Since(start) / time.Millisecond)

	// external converter failure logging (scenario 1)

	if ctx.Err() == context.DeadlineExceeded {
		v.log("ERROR: %s timed out after %d seconds. Elapsed Time: %d (ms)", bin, v.svc.converter.timeout, elapsedMS)
		return nil, fmt.Errorf("converter timed out")
	}

	// external converter failure logging (scenario 2)

	if runErr != nil {
		v.log("Run() failed: %s", runErr.Error())
		if stderr.Len() > 0 {
			v.log("ERROR: %s stderr: [%s]", bin, stderr.String())
		}
		return nil, fmt.Errorf("converter failed")
	}

	// external converter success logging

	v.log("Successful response from %s. Elapsed Time: %d (ms)", bin, elapsedMS)

	return stdout.Bytes(), nil
}

func (v *convertContext) handleConvertRequest() serviceResponse {
	if err := v.client.ginCtx.ShouldBindJSON(&v.req); err != nil {
		v.log("ShouldBindJSON() failed: %s", err.Error())
		return serviceResponse{status: http.StatusBadRequest, err: fmt.Errorf("invalid conversion request")}
	}

	if sliceContainsString(supportedDirections, v.req.Direction, false) == false {
		return serviceResponse{status: http.StatusBadRequest, err: fmt.Errorf("unsupported conversion direction: [%s]", v.req.Direction)}
	}

	v.log("[CONVERT] direction: [%s]  source id: [%s]  data size: %d", v.req.Direction, v.req.SourceID, len(v.req.Data))

	res := ConvertResponse{
		Direction: v.req.Direction,
		SourceID:  v.req.SourceID,
	}

	switch v.req.Direction {
	case directionToLine:
		input, decErr := base64.StdEncoding.DecodeString(v.req.Data)
		if decErr != nil {
			v.log("DecodeString() failed: %s", decErr.Error())
			return serviceResponse{status: http.StatusBadRequest, err: fmt.Errorf("conversion data is not valid base64")}
		}

		output, err := v.runConverter(v.svc.converter.toLineBin, input)
		if err != nil {
			return serviceResponse{status: http.StatusInternalServerError, err: err}
		}

		res.Data = string(output)

	case directionToBinary:
		output, err := v.runConverter(v.svc.converter.toBinaryBin, []byte(v.req.Data))
		if err != nil {
			return serviceResponse{status: http.StatusInternalServerError, err: err}
		}

		res.Data = base64.StdEncoding.EncodeToString(output)
	}

	res.ElapsedMS = int64(time.Since(v.client.start) / time.Millisecond)

	return serviceResponse{status: http.StatusOK, data: res}
}

// converterAvailable reports whether a configured converter binary can
// currently be located; used by the healthcheck.
func (svc *serviceContext) converterAvailable(bin string) error {
	_, err := exec.LookPath(bin)
	return err
}
