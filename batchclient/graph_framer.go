package batchclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// GraphFramer serializes a GRAPH-family batch as a single JSON envelope
// POSTed to "beta/$batch", splicing request bodies in as raw JSON rather
// than JSON-encoded strings, and parses the JSON response envelope back
// into per-request status/body pairs.
type GraphFramer struct{}

// NewGraphFramer returns a ready-to-use Graph framer.
func NewGraphFramer() *GraphFramer {
	return &GraphFramer{}
}

type graphSubRequest struct {
	ID      string            `json:"id"`
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Body    json.RawMessage   `json:"body,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

type graphEnvelope struct {
	Requests []graphSubRequest `json:"requests"`
}

type graphSubResponse struct {
	ID      string            `json:"id"`
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    json.RawMessage   `json:"body,omitempty"`
}

type graphEnvelopeResponse struct {
	Responses []graphSubResponse `json:"responses"`
}

// bodyPlaceholder returns the sentinel token spliced into the envelope in
// place of request n's raw body, then replaced by literal text
// substitution after marshaling. Built from characters that need no JSON
// escaping, so strconv.Quote's output for it survives json.Marshal's
// validation unchanged and can be matched back out of the marshaled text.
func bodyPlaceholder(order int) string {
	return fmt.Sprintf(bodyPlaceholderPrefix+"%d@@", order)
}

// bodyPlaceholderPrefix is the part shared by every request's placeholder;
// frame rejects any body that contains it.
const bodyPlaceholderPrefix = "@@GRAPH_BODY_PLACEHOLDER_"

// frame builds the POST {graphBaseURI}/beta/$batch HTTP request for the
// given requests' 1-based id assignment (id = order + 1, so that parsing
// the response can invert it as order = id - 1 even when this batch is a
// sparse subset of a split parent batch).
func (f *GraphFramer) frame(reqs []*Request, graphBaseURI string) (*http.Request, error) {
	placeholders := make(map[string][]byte, len(reqs))

	envelope := graphEnvelope{Requests: make([]graphSubRequest, 0, len(reqs))}
	for _, req := range reqs {
		sub := graphSubRequest{
			ID:     strconv.Itoa(req.order + 1),
			Method: string(req.method),
			URL:    req.primaryCall.RequestURL,
		}

		if len(req.primaryCall.JSONBody) > 0 {
			token := bodyPlaceholder(req.order)
			if bytes.Contains(req.primaryCall.JSONBody, []byte(bodyPlaceholderPrefix)) {
				return nil, fmt.Errorf("batchclient: request body for order %d contains the reserved graph body placeholder", req.order)
			}
			sub.Body = json.RawMessage(strconv.Quote(token))
			sub.Headers = map[string]string{"Content-Type": "application/json"}
			placeholders[token] = req.primaryCall.JSONBody
		}

		envelope.Requests = append(envelope.Requests, sub)
	}

	raw, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("batchclient: marshaling graph envelope: %w", err)
	}

	text := string(raw)
	for token, body := range placeholders {
		text = strings.Replace(text, strconv.Quote(token), string(body), 1)
	}

	url := strings.TrimRight(graphBaseURI, "/") + "/beta/$batch"
	httpReq, err := http.NewRequest(http.MethodPost, url, strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("batchclient: building graph batch request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

// parseResponse deserializes the {responses: [...]} envelope and attaches
// each sub-response to the originating request located at order = id - 1
// within batch. batch is the (possibly split) sibling batch that was
// actually dispatched, so GetRequest resolves only the requests that were
// part of this GRAPH call.
func (f *GraphFramer) parseResponse(batch *Batch, bodyText string) error {
	var envelope graphEnvelopeResponse
	if err := json.Unmarshal([]byte(bodyText), &envelope); err != nil {
		return &MalformedResponseError{Family: FamilyGraph, Reason: err.Error()}
	}

	for _, resp := range envelope.Responses {
		id, err := strconv.Atoi(resp.ID)
		if err != nil {
			return &MalformedResponseError{Family: FamilyGraph, Reason: fmt.Sprintf("non-numeric response id %q", resp.ID)}
		}

		order := id - 1
		req := batch.GetRequest(order)
		if req == nil {
			return &MalformedResponseError{Family: FamilyGraph, Reason: fmt.Sprintf("response id %d matches no queued request", id)}
		}

		bodyStr := ""
		if len(resp.Body) > 0 {
			bodyStr = string(resp.Body)
		}

		if resp.Status/100 != 2 {
			return &SubRequestFailure{URL: req.primaryCall.RequestURL, Status: resp.Status, Body: bodyStr}
		}
		req.attachResponse(resp.Status, bodyStr)
	}

	return nil
}
