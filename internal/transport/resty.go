// Package transport provides the default RestTransport/GraphTransport
// implementations, thin wrappers around go-resty/resty that carry the
// teacher's retry policy and structured request/response logging.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/batchwerk/spobatch/batchclient"
	"github.com/batchwerk/spobatch/internal/logging"
)

// restyLogger routes resty's internal logging through the package's
// structured logger instead of the standard library logger it defaults to.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) { logging.Error(format, v...) }
func (restyLogger) Warnf(format string, v ...interface{})  { logging.Warn(format, v...) }
func (restyLogger) Debugf(format string, v ...interface{}) { logging.Debug(format, v...) }

// newRestyClient builds a resty.Client configured with the shared timeout,
// retry, and logging policy used by both family transports: retry only on
// connection errors (never on HTTP-level failures, which the dispatcher
// itself interprets), with capped exponential-ish backoff.
func newRestyClient(timeout time.Duration) *resty.Client {
	client := resty.New().SetTimeout(timeout)
	client.SetLogger(restyLogger{})

	client.SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil
		})

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("transport: %s %s", req.Method, req.URL)
		return nil
	})
	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("transport: %d %s (took %v)", resp.StatusCode(), resp.Request.URL, resp.Time())
		return nil
	})

	return client
}

// RestTransport is the default batchclient.RestTransport, sending SharePoint
// REST $batch requests through resty.
type RestTransport struct {
	client *resty.Client
}

// NewRestTransport builds a RestTransport with the given per-request timeout.
func NewRestTransport(timeout time.Duration) *RestTransport {
	return &RestTransport{client: newRestyClient(timeout)}
}

// Send implements batchclient.RestTransport.
func (t *RestTransport) Send(ctx context.Context, req *http.Request) (*batchclient.TransportResponse, error) {
	return send(ctx, t.client, req)
}

// GraphTransport is the default batchclient.GraphTransport, sending Graph
// beta/$batch requests through resty.
type GraphTransport struct {
	client *resty.Client
}

// NewGraphTransport builds a GraphTransport with the given per-request timeout.
func NewGraphTransport(timeout time.Duration) *GraphTransport {
	return &GraphTransport{client: newRestyClient(timeout)}
}

// Send implements batchclient.GraphTransport.
func (t *GraphTransport) Send(ctx context.Context, req *http.Request) (*batchclient.TransportResponse, error) {
	return send(ctx, t.client, req)
}

// send adapts a framer-built *http.Request onto resty, preserving the
// framer's headers and body, and translates the resty response back into
// the batchclient-facing TransportResponse shape.
func send(ctx context.Context, client *resty.Client, req *http.Request) (*batchclient.TransportResponse, error) {
	body, err := readAndResetBody(req)
	if err != nil {
		return nil, fmt.Errorf("transport: reading request body: %w", err)
	}

	restyReq := client.R().
		SetContext(ctx).
		SetHeaderMultiValues(req.Header).
		SetBody(body)

	resp, err := restyReq.Execute(req.Method, req.URL.String())
	if err != nil {
		return nil, err
	}

	return &batchclient.TransportResponse{
		Status:  resp.StatusCode(),
		Headers: resp.Header(),
		Body:    string(resp.Body()),
	}, nil
}

// readAndResetBody drains req.Body (framers build requests with an
// in-memory body, so this never touches the network) so its bytes can be
// handed to resty, which builds its own request rather than reusing req.
func readAndResetBody(req *http.Request) ([]byte, error) {
	if req.Body == nil {
		return nil, nil
	}
	defer req.Body.Close()
	return io.ReadAll(req.Body)
}
