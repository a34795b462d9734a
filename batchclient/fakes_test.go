package batchclient

import (
	"context"
	"encoding/json"
	"net/http"
)

// fakeModel is a minimal Model/TransientObject/IDataModelParent
// implementation used across the test suite, standing in for a real
// domain entity.
type fakeModel struct {
	fields  map[string]any
	deleted bool
	parent  ManageableCollection

	mergedFrom []*fakeModel
	committed  bool
}

func newFakeModel(fields map[string]any) *fakeModel {
	if fields == nil {
		fields = map[string]any{}
	}
	return &fakeModel{fields: fields}
}

func (m *fakeModel) HasValue(name string) bool {
	v, ok := m.fields[name]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

func (m *fakeModel) GetValue(name string) any { return m.fields[name] }

func (m *fakeModel) Commit() { m.committed = true }

func (m *fakeModel) Merge(other TransientObject) {
	if o, ok := other.(*fakeModel); ok {
		m.mergedFrom = append(m.mergedFrom, o)
		for k, v := range o.fields {
			if _, exists := m.fields[k]; !exists {
				m.fields[k] = v
			}
		}
	}
}

func (m *fakeModel) MarkDeleted() { m.deleted = true }

func (m *fakeModel) Parent() ManageableCollection { return m.parent }

// fakeCollection is a minimal ManageableCollection.
type fakeCollection struct {
	members []TransientObject
}

func newFakeCollection(members ...TransientObject) *fakeCollection {
	return &fakeCollection{members: members}
}

func (c *fakeCollection) Remove(model TransientObject) {
	for i, mem := range c.members {
		if mem == model {
			c.members = append(c.members[:i], c.members[i+1:]...)
			return
		}
	}
}

func (c *fakeCollection) contains(model TransientObject) bool {
	for _, mem := range c.members {
		if mem == model {
			return true
		}
	}
	return false
}

// fakeAuth is a no-op AuthenticationProvider that stamps a header so
// tests can assert it ran.
type fakeAuth struct{}

func (fakeAuth) Authenticate(ctx context.Context, targetURI string, req *http.Request) error {
	req.Header.Set("Authorization", "Bearer faketoken")
	return nil
}

// fakeTransport replays a scripted sequence of responses/errors, one per
// call, and records every http.Request it was handed for assertions.
type fakeTransport struct {
	responses []*TransportResponse
	errs      []error
	calls     []*http.Request
}

func (t *fakeTransport) Send(ctx context.Context, req *http.Request) (*TransportResponse, error) {
	idx := len(t.calls)
	t.calls = append(t.calls, req)

	if idx < len(t.errs) && t.errs[idx] != nil {
		return nil, t.errs[idx]
	}
	if idx < len(t.responses) {
		return t.responses[idx], nil
	}
	return &TransportResponse{Status: 200, Body: "{}"}, nil
}

// fakeMapper decodes a JSON object response body into the bound
// fakeModel's fields, standing in for a real domain JSON mapping helper.
type fakeMapper struct {
	mapped []*Request
}

func (m *fakeMapper) Map(req *Request) error {
	m.mapped = append(m.mapped, req)

	body, ok := req.ResponseJSON()
	if !ok || body == "" {
		return nil
	}
	fm, ok := req.model.(*fakeModel)
	if !ok {
		return nil
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return err
	}
	for k, v := range decoded {
		fm.fields[k] = v
	}
	return nil
}
