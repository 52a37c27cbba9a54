package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

var (
	// ErrSubmitInFlight means a submission for this job has not resolved yet.
	ErrSubmitInFlight = errors.New("a submission is already in flight")

	// ErrValidationFailed means field errors were found and no request was made.
	ErrValidationFailed = errors.New("validation failed")
)

// nullToken is sent for an optional parameter the user left blank, so the
// server can tell "auto" apart from a caller-provided zero.
const nullToken = "null"

// Submitter drives SubmissionJob through its lifecycle: validate, upload,
// decode, save. One Submitter serves any number of jobs.
type Submitter struct {
	BaseURL     string
	Token       string
	HTTPClient  *http.Client
	DownloadDir string
}

func NewSubmitter(baseURL, token, downloadDir string) *Submitter {
	return &Submitter{
		BaseURL:     baseURL,
		Token:       token,
		HTTPClient:  http.DefaultClient,
		DownloadDir: downloadDir,
	}
}

// Submit runs one submission to completion. It always resolves: the return
// value is nil exactly when the job reached Succeeded, and the job is left
// in a terminal, re-submittable state on every other path, including panics
// in decoding. Field errors are reported via job.FieldErrors alongside
// ErrValidationFailed, without any network traffic.
func (s *Submitter) Submit(ctx context.Context, job *SubmissionJob) (err error) {
	job.mu.Lock()
	if job.Status == StatusValidating || job.Status == StatusSubmitting {
		job.mu.Unlock()
		return ErrSubmitInFlight
	}
	job.Status = StatusValidating
	job.mu.Unlock()

	if fieldErrs := ValidateAll(job); len(fieldErrs) > 0 {
		job.mu.Lock()
		job.FieldErrors = fieldErrs
		job.Status = StatusIdle
		job.mu.Unlock()
		return ErrValidationFailed
	}

	job.mu.Lock()
	job.FieldErrors = nil
	job.ErrMessage = ""
	job.Result = nil
	job.Status = StatusSubmitting
	job.mu.Unlock()

	// Whatever happens below, the job must end up terminal, never stuck
	// in Submitting.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("submission panicked: %v", r)
		}
		job.mu.Lock()
		if err != nil {
			job.ErrMessage = err.Error()
			job.Status = StatusFailed
		} else {
			job.Status = StatusSucceeded
		}
		job.mu.Unlock()
	}()

	req, err := s.buildRequest(ctx, job)
	if err != nil {
		return err
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return errors.New(errorMessage(body, resp.StatusCode))
	}

	result := DecodeResponse(resp.Header.Get("Content-Disposition"), body)

	if err := s.saveLocal(result); err != nil {
		return fmt.Errorf("saving result: %w", err)
	}

	job.mu.Lock()
	job.Result = result
	job.mu.Unlock()
	return nil
}

// buildRequest assembles the multipart upload. Optional parameters are
// serialized as the literal "null" when blank rather than omitted.
func (s *Submitter) buildRequest(ctx context.Context, job *SubmissionJob) (*http.Request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", job.File.Name)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(job.File.Data); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"k_neighbour":  orNull(job.KNeighbour),
		"target_ratio": orNull(job.TargetRatio),
		"random_state": orNull(job.RandomState),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/api/process", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.Token)
	return req, nil
}

func orNull(v string) string {
	if v == "" {
		return nullToken
	}
	return v
}

// errorMessage digs a human-readable message out of a JSON error body,
// trying the field names the server and the engine use, with a generic
// fallback when the body is not JSON at all.
func errorMessage(body []byte, status int) string {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, key := range []string{"error", "detail", "message"} {
			if msg, ok := parsed[key].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return fmt.Sprintf("Processing failed with status %d", status)
}

// saveLocal writes the artifact under its recovered filename, the desktop
// analogue of the browser download the dashboard triggers.
func (s *Submitter) saveLocal(result *Result) error {
	if s.DownloadDir == "" {
		return nil
	}
	if err := os.MkdirAll(s.DownloadDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(s.DownloadDir, filepath.Base(result.Filename))
	return os.WriteFile(path, result.Data, 0o644)
}
