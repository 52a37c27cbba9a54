package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func newJob() *SubmissionJob {
	return &SubmissionJob{
		File:        &FileInput{Name: "dataset.zip", Data: []byte("dataset bytes")},
		KNeighbour:  "5",
		TargetRatio: "0.5",
	}
}

func TestSubmit_ValidationFailureMakesNoRequest(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	job := newJob()
	job.File = nil
	job.RandomState = "0"

	s := NewSubmitter(srv.URL, "tok", "")
	err := s.Submit(context.Background(), job)
	require.ErrorIs(t, err, ErrValidationFailed)
	require.Zero(t, atomic.LoadInt32(&calls))

	require.Equal(t, StatusIdle, job.Snapshot())
	require.Contains(t, job.FieldErrors, FieldFile)
	require.Contains(t, job.FieldErrors, FieldRandomState)
}

func TestSubmit_Success(t *testing.T) {
	t.Parallel()

	archive := buildZip(t, map[string]string{
		"augmentation_metadata.json": `{"metrics": {"total_synthetic_images": 7}}`,
		"classA/synth1.png":          "fake image",
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(32<<20))

		// Blank optional fields travel as the literal "null".
		require.Equal(t, "5", r.FormValue("k_neighbour"))
		require.Equal(t, "0.5", r.FormValue("target_ratio"))
		require.Equal(t, "null", r.FormValue("random_state"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "dataset.zip", header.Filename)

		w.Header().Set("Content-Disposition", `attachment; filename*=UTF-8''result%20final.zip`)
		w.Header().Set("Content-Type", "application/zip")
		w.Write(archive)
	}))
	defer srv.Close()

	dir := t.TempDir()
	job := newJob()

	s := NewSubmitter(srv.URL, "tok-123", dir)
	require.NoError(t, s.Submit(context.Background(), job))

	require.Equal(t, StatusSucceeded, job.Snapshot())
	require.NotNil(t, job.Result)
	require.Equal(t, "result final.zip", job.Result.Filename)
	require.NotNil(t, job.Result.Metrics)
	require.Empty(t, job.ErrMessage)

	saved, err := os.ReadFile(filepath.Join(dir, "result final.zip"))
	require.NoError(t, err)
	require.Equal(t, archive, saved)
}

func TestSubmit_ServerErrorBodyIsSurfaced(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "no synthetic images generated"}`))
	}))
	defer srv.Close()

	job := newJob()
	s := NewSubmitter(srv.URL, "tok", "")
	err := s.Submit(context.Background(), job)
	require.EqualError(t, err, "no synthetic images generated")
	require.Equal(t, StatusFailed, job.Snapshot())
	require.Equal(t, "no synthetic images generated", job.ErrMessage)
}

func TestSubmit_NonJSONErrorBodyFallsBack(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	job := newJob()
	s := NewSubmitter(srv.URL, "tok", "")
	err := s.Submit(context.Background(), job)
	require.EqualError(t, err, "Processing failed with status 502")
	require.Equal(t, StatusFailed, job.Snapshot())
}

func TestSubmit_NetworkFailureLeavesJobTerminal(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	job := newJob()
	s := NewSubmitter(srv.URL, "tok", "")
	err := s.Submit(context.Background(), job)
	require.Error(t, err)
	require.Equal(t, StatusFailed, job.Snapshot())
	require.NotEmpty(t, job.ErrMessage)
}

func TestSubmit_RejectsConcurrentSubmission(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	job := newJob()
	job.Status = StatusSubmitting // first submission still in flight

	s := NewSubmitter(srv.URL, "tok", "")
	err := s.Submit(context.Background(), job)
	require.ErrorIs(t, err, ErrSubmitInFlight)
	require.Zero(t, atomic.LoadInt32(&calls))
	require.Equal(t, StatusSubmitting, job.Snapshot())
}

func TestSubmit_FailedJobCanBeResubmitted(t *testing.T) {
	t.Parallel()

	var calls int32
	archive := buildZip(t, map[string]string{"classA/synth1.png": "x"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "transient"}`))
			return
		}
		w.Header().Set("Content-Disposition", `attachment; filename="out.zip"`)
		w.Write(archive)
	}))
	defer srv.Close()

	job := newJob()
	s := NewSubmitter(srv.URL, "tok", t.TempDir())

	require.Error(t, s.Submit(context.Background(), job))
	require.Equal(t, StatusFailed, job.Snapshot())

	require.NoError(t, s.Submit(context.Background(), job))
	require.Equal(t, StatusSucceeded, job.Snapshot())

	// Metrics were unavailable but the artifact still came through.
	require.Nil(t, job.Result.Metrics)
	require.Equal(t, "out.zip", job.Result.Filename)
}
