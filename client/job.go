// Package client implements the dashboard side of the processing flow:
// field validation, the submission state machine, and decoding of the
// engine's archive response.
package client

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Status is the single source of truth for where a submission stands.
// A job is always in exactly one of these states.
type Status int

const (
	StatusIdle Status = iota
	StatusValidating
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusValidating:
		return "validating"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FileInput is the dataset the user picked: its name and raw bytes.
type FileInput struct {
	Name string
	Data []byte
}

// Result is what a successful submission yields: the processed archive,
// the filename the server suggested for it, and the quality metrics that
// were embedded in the archive, when they could be recovered.
type Result struct {
	Filename string
	Data     []byte
	Metrics  json.RawMessage
}

// SizeMiB renders the artifact size for display.
func (r *Result) SizeMiB() string {
	return fmt.Sprintf("%.2f MiB", float64(len(r.Data))/(1024*1024))
}

// SubmissionJob holds the state of one processing form instance. It is
// mutated only by the validation functions and the submitter.
type SubmissionJob struct {
	mu sync.Mutex

	File        *FileInput
	KNeighbour  string
	TargetRatio string
	RandomState string

	Status      Status
	FieldErrors map[string]string
	ErrMessage  string
	Result      *Result
}

// Reset returns the job to a blank idle form, as after a successful
// submission or navigation away.
func (j *SubmissionJob) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.File = nil
	j.KNeighbour = ""
	j.TargetRatio = ""
	j.RandomState = ""
	j.Status = StatusIdle
	j.FieldErrors = nil
	j.ErrMessage = ""
	j.Result = nil
}

// Snapshot returns the current status under the job's lock.
func (j *SubmissionJob) Snapshot() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.Status
}
