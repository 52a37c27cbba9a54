package client

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/url"
	"strings"
)

// DefaultFilename is used when the server suggests no name for the archive.
const DefaultFilename = "augmented_dataset.zip"

// metadataEntryName is the well-known entry inside the archive that carries
// the augmentation report.
const metadataEntryName = "augmentation_metadata.json"

// FilenameFromHeader recovers the download name from a Content-Disposition
// header. The RFC 5987 extended form (filename*=UTF-8''...) wins over the
// plain quoted form; with neither present the default name is used.
func FilenameFromHeader(header string) string {
	if header == "" {
		return DefaultFilename
	}

	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if !strings.HasPrefix(part, "filename*=") {
			continue
		}
		v := strings.TrimPrefix(part, "filename*=")
		if rest, ok := cutCharsetPrefix(v); ok {
			v = rest
		}
		v = strings.Trim(v, `"`)
		if decoded, err := url.PathUnescape(v); err == nil && decoded != "" {
			return decoded
		}
	}

	if _, params, err := mime.ParseMediaType(header); err == nil {
		if name := params["filename"]; name != "" {
			return name
		}
	}

	return DefaultFilename
}

// cutCharsetPrefix strips the charset''[lang] prefix of an RFC 5987 value.
func cutCharsetPrefix(v string) (string, bool) {
	idx := strings.Index(v, "''")
	if idx < 0 {
		return v, false
	}
	return v[idx+2:], true
}

// ExtractMetrics opens the body as a zip archive, finds the metadata entry,
// and lifts its "metrics" field. Every failure mode (not an archive, entry
// missing, malformed JSON, metrics absent) returns a nil result with a
// diagnostic the caller is free to ignore: the archive itself is still a
// valid artifact and must be delivered either way.
func ExtractMetrics(body []byte) (json.RawMessage, error) {
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, err
	}

	for _, f := range zr.File {
		if f.Name != metadataEntryName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}

		var meta struct {
			Metrics json.RawMessage `json:"metrics"`
		}
		if err := json.Unmarshal(data, &meta); err != nil {
			return nil, err
		}
		if len(meta.Metrics) == 0 {
			return nil, errors.New("metadata entry has no metrics field")
		}
		return meta.Metrics, nil
	}

	return nil, errors.New("archive has no metadata entry")
}

// DecodeResponse turns a successful processing response into a Result.
// Metrics extraction is best effort and never fails the decode.
func DecodeResponse(contentDisposition string, body []byte) *Result {
	metrics, _ := ExtractMetrics(body)
	return &Result{
		Filename: FilenameFromHeader(contentDisposition),
		Data:     body,
		Metrics:  metrics,
	}
}
