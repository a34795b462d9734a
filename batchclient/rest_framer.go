package batchclient

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// RestFramer partitions a REST-family batch by site root, serializes each
// site's requests as a MIME multipart/mixed $batch payload with OData
// changesets wrapping mutating calls, and parses the line-oriented
// multipart response back into per-request status/body pairs.
type RestFramer struct{}

// NewRestFramer returns a ready-to-use REST framer. It holds no state
// between calls; one instance may be shared across batches.
func NewRestFramer() *RestFramer {
	return &RestFramer{}
}

// siteOf returns the prefix of a REST request URL up to (exclusive of)
// the first occurrence of "/_api/", and whether that substring was found
// at all.
func siteOf(requestURL string) (string, bool) {
	idx := strings.Index(requestURL, "/_api/")
	if idx < 0 {
		return "", false
	}
	return requestURL[:idx], true
}

// partitionBySite groups requests by their site root, preserving the
// order in which each site was first encountered so sub-batches are
// dispatched in a deterministic, reproducible sequence.
func partitionBySite(reqs []*Request) (sites []string, grouped map[string][]*Request) {
	grouped = make(map[string][]*Request)
	for _, req := range reqs {
		site, _ := siteOf(req.primaryCall.RequestURL)
		if _, exists := grouped[site]; !exists {
			sites = append(sites, site)
		}
		grouped[site] = append(grouped[site], req)
	}
	return sites, grouped
}

// frame builds the POST {site}/_api/$batch HTTP request for one site's
// worth of requests, in ascending order.
func (f *RestFramer) frame(site string, reqs []*Request, batchID string) (*http.Request, error) {
	boundary := "batch_" + batchID

	var buf bytes.Buffer
	for _, req := range reqs {
		buf.WriteString("--" + boundary + "\r\n")

		switch req.method {
		case MethodGet:
			buf.WriteString("Content-Type: application/http\r\n")
			buf.WriteString("Content-Transfer-Encoding: binary\r\n\r\n")
			fmt.Fprintf(&buf, "GET %s HTTP/1.1\r\n", req.primaryCall.RequestURL)
			buf.WriteString("Accept: application/json;odata=verbose\r\n\r\n")
		default:
			changesetBoundary := "changeset_" + uuid.NewString()
			fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", changesetBoundary)
			buf.WriteString("--" + changesetBoundary + "\r\n")
			buf.WriteString("Content-Type: application/http\r\n")
			buf.WriteString("Content-Transfer-Encoding: binary\r\n\r\n")
			fmt.Fprintf(&buf, "%s %s HTTP/1.1\r\n", req.method, req.primaryCall.RequestURL)
			buf.WriteString("Accept: application/json;odata=verbose\r\n")
			buf.WriteString("Content-Type: application/json;odata=verbose\r\n")
			fmt.Fprintf(&buf, "Content-Length: %d\r\n", len(req.primaryCall.JSONBody))
			buf.WriteString("If-Match: *\r\n\r\n")
			buf.Write(req.primaryCall.JSONBody)
			buf.WriteString("\r\n")
			buf.WriteString("--" + changesetBoundary + "--\r\n")
		}
	}
	buf.WriteString("--" + boundary + "--\r\n")

	httpReq, err := http.NewRequest(http.MethodPost, site+"/_api/$batch", &buf)
	if err != nil {
		return nil, fmt.Errorf("batchclient: building REST batch request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "multipart/mixed; boundary="+boundary)
	return httpReq, nil
}

// parseResponse walks the line-oriented multipart response body and
// attaches each sub-response to the next unconsumed request in reqs
// (which must be in the same order the requests were serialized in).
//
// Known limitation, preserved deliberately: a sub-response whose JSON
// body spans multiple lines, or whose top-level value is a JSON array
// rather than an object, will not be recognized — only a line beginning
// with "{" is treated as a body line. A non-2xx sub-response with no such
// body line is silently skipped rather than failing the batch. Fixing
// this requires a real MIME multipart parser instead of line scanning.
func (f *RestFramer) parseResponse(reqs []*Request, bodyText string) error {
	lines := strings.Split(bodyText, "\n")

	idx := 0
	haveStatus := false
	curStatus := 0

	for _, raw := range lines {
		line := strings.TrimRight(raw, "\r")

		switch {
		case strings.HasPrefix(line, "HTTP/1.1 "):
			status, err := parseStatusLine(line)
			if err != nil {
				return &MalformedResponseError{Family: FamilyREST, Reason: err.Error()}
			}
			curStatus = status
			haveStatus = true

			if status == 204 {
				if idx >= len(reqs) {
					return &MalformedResponseError{Family: FamilyREST, Reason: "more sub-responses than sub-requests"}
				}
				reqs[idx].attachResponse(status, "")
				idx++
				haveStatus = false
			}

		case haveStatus && strings.HasPrefix(line, "{"):
			if idx >= len(reqs) {
				return &MalformedResponseError{Family: FamilyREST, Reason: "more sub-responses than sub-requests"}
			}
			req := reqs[idx]
			if curStatus/100 == 2 {
				req.attachResponse(curStatus, line)
			} else {
				return &SubRequestFailure{URL: req.primaryCall.RequestURL, Status: curStatus, Body: line}
			}
			idx++
			haveStatus = false
		}
	}

	return nil
}

// parseStatusLine extracts the three-digit status code from a line of the
// form "HTTP/1.1 200 OK".
func parseStatusLine(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, fmt.Errorf("malformed status line %q", line)
	}
	status, err := strconv.Atoi(fields[1])
	if err != nil || status < 100 || status > 599 {
		return 0, fmt.Errorf("malformed status code in line %q", line)
	}
	return status, nil
}
