package client

import (
	"strconv"
)

// Field names used as keys in SubmissionJob.FieldErrors.
const (
	FieldFile        = "file"
	FieldKNeighbour  = "kNeighbour"
	FieldTargetRatio = "targetRatio"
	FieldRandomState = "randomState"
)

// Each rule is a pure function returning an empty string when the value is
// acceptable. The same rules run per keystroke and once before submission,
// so incremental and aggregate validation can never disagree.

// ValidateFile requires a dataset to be selected.
func ValidateFile(f *FileInput) string {
	if f == nil || f.Name == "" {
		return "A dataset file is required"
	}
	return ""
}

// ValidateKNeighbour accepts an empty value or an integer of at least 2.
func ValidateKNeighbour(v string) string {
	if v == "" {
		return ""
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 2 {
		return "k_neighbour must be an integer of at least 2"
	}
	return ""
}

// ValidateTargetRatio accepts an empty value or a number in [0, 1].
func ValidateTargetRatio(v string) string {
	if v == "" {
		return ""
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f > 1 {
		return "target_ratio must be a number between 0 and 1"
	}
	return ""
}

// ValidateRandomState accepts an empty value or a positive integer.
func ValidateRandomState(v string) string {
	if v == "" {
		return ""
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return "random_state must be a positive integer"
	}
	return ""
}

// ValidateAll runs every field rule and returns only the failures. An empty
// map means the form may be submitted.
func ValidateAll(job *SubmissionJob) map[string]string {
	errs := make(map[string]string)
	if msg := ValidateFile(job.File); msg != "" {
		errs[FieldFile] = msg
	}
	if msg := ValidateKNeighbour(job.KNeighbour); msg != "" {
		errs[FieldKNeighbour] = msg
	}
	if msg := ValidateTargetRatio(job.TargetRatio); msg != "" {
		errs[FieldTargetRatio] = msg
	}
	if msg := ValidateRandomState(job.RandomState); msg != "" {
		errs[FieldRandomState] = msg
	}
	return errs
}
