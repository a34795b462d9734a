package batchclient

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGraphFramerFramesSingleGet covers scenario 1: a single-family Graph
// GET, asserting the id is the 1-based stringified order.
func TestGraphFramerFramesSingleGet(t *testing.T) {
	b := newBatch("")
	b.Add(newFakeModel(nil), testEntityInfo, MethodGet, FamilyGraph, Call{RequestURL: "me/drive/root"}, nil, nil, nil)

	framer := NewGraphFramer()
	httpReq, err := framer.frame(b.Requests(), "https://graph.microsoft.com")
	require.NoError(t, err)

	assert.Equal(t, "https://graph.microsoft.com/beta/$batch", httpReq.URL.String())
	assert.Equal(t, "application/json", httpReq.Header.Get("Content-Type"))

	raw, err := io.ReadAll(httpReq.Body)
	require.NoError(t, err)

	var envelope graphEnvelope
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.Len(t, envelope.Requests, 1)
	assert.Equal(t, "1", envelope.Requests[0].ID)
	assert.Equal(t, "GET", envelope.Requests[0].Method)
	assert.Equal(t, "me/drive/root", envelope.Requests[0].URL)
}

// TestGraphFramerSplicesRawBodyWithoutDoubleEncoding asserts the body
// placeholder substitution embeds the request body as a raw JSON object,
// not a JSON-encoded string.
func TestGraphFramerSplicesRawBodyWithoutDoubleEncoding(t *testing.T) {
	b := newBatch("")
	b.Add(newFakeModel(nil), testEntityInfo, MethodPost, FamilyGraph,
		Call{RequestURL: "sites/x/lists", JSONBody: []byte(`{"displayName":"demo"}`)}, nil, nil, nil)

	framer := NewGraphFramer()
	httpReq, err := framer.frame(b.Requests(), "https://graph.microsoft.com")
	require.NoError(t, err)

	raw, err := io.ReadAll(httpReq.Body)
	require.NoError(t, err)

	var envelope struct {
		Requests []struct {
			ID      string          `json:"id"`
			Body    json.RawMessage `json:"body"`
			Headers map[string]string
		}
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.Len(t, envelope.Requests, 1)

	var body map[string]any
	require.NoError(t, json.Unmarshal(envelope.Requests[0].Body, &body))
	assert.Equal(t, "demo", body["displayName"])
	assert.Equal(t, "application/json", envelope.Requests[0].Headers["Content-Type"])
}

// TestGraphFramerParseResponseSparseOrderMapping is the "Ordering"
// testable property for the GRAPH family under a split batch: responses
// must map back to their originating request via order = id - 1, even
// when the dispatched sub-batch's orders are a non-contiguous subset
// (here {1, 3}) of a larger parent batch.
func TestGraphFramerParseResponseSparseOrderMapping(t *testing.T) {
	parent := newBatch("")
	parent.Add(newFakeModel(nil), testEntityInfo, MethodGet, FamilyREST, Call{RequestURL: "https://host/_api/web"}, nil, nil, nil)   // order 0
	parent.Add(newFakeModel(nil), testEntityInfo, MethodGet, FamilyGraph, Call{RequestURL: "sites/a"}, nil, nil, nil)                // order 1
	parent.Add(newFakeModel(nil), testEntityInfo, MethodGet, FamilyREST, Call{RequestURL: "https://host/_api/lists"}, nil, nil, nil) // order 2
	parent.Add(newFakeModel(nil), testEntityInfo, MethodGet, FamilyGraph, Call{RequestURL: "sites/b"}, nil, nil, nil)                // order 3

	_, graphBatch := splitByFamily(parent)

	responseBody := `{"responses":[{"id":"4","status":200,"body":{"name":"b"}},{"id":"2","status":200,"body":{"name":"a"}}]}`

	framer := NewGraphFramer()
	err := framer.parseResponse(graphBatch, responseBody)
	require.NoError(t, err)

	reqOrder1 := parent.GetRequest(1)
	body1, ok := reqOrder1.ResponseJSON()
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"a"}`, body1)

	reqOrder3 := parent.GetRequest(3)
	body3, ok := reqOrder3.ResponseJSON()
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"b"}`, body3)
}

func TestGraphFramerParseResponseSubRequestFailure(t *testing.T) {
	b := newBatch("")
	b.Add(newFakeModel(nil), testEntityInfo, MethodGet, FamilyGraph, Call{RequestURL: "me/drive/root"}, nil, nil, nil)

	responseBody := `{"responses":[{"id":"1","status":404,"body":{"error":"not found"}}]}`

	framer := NewGraphFramer()
	err := framer.parseResponse(b, responseBody)
	require.Error(t, err)

	var subFail *SubRequestFailure
	require.ErrorAs(t, err, &subFail)
	assert.Equal(t, 404, subFail.Status)
}

func TestGraphFramerRejectsBodyContainingPlaceholder(t *testing.T) {
	b := newBatch("")
	malicious := bodyPlaceholder(0)
	b.Add(newFakeModel(nil), testEntityInfo, MethodPost, FamilyGraph,
		Call{RequestURL: "sites/x/lists", JSONBody: []byte(malicious)}, nil, nil, nil)

	framer := NewGraphFramer()
	_, err := framer.frame(b.Requests(), "https://graph.microsoft.com")
	require.Error(t, err)
}
