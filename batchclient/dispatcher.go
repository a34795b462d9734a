package batchclient

import (
	"context"

	"github.com/batchwerk/spobatch/internal/logging"
)

// Dispatcher authenticates, sends, and parses the framed HTTP calls for
// one dispatch unit (a whole batch, or one side of a REST/GRAPH split),
// then drives each responded request through the external JSON mapping
// helper and commits any successfully-patched transient models.
type Dispatcher struct {
	auth  AuthenticationProvider
	rest  RestTransport
	graph GraphTransport
	mapper JsonMappingHelper

	restFramer   *RestFramer
	graphFramer  *GraphFramer
	graphBaseURI string
}

// NewDispatcher wires the external collaborators (authentication
// provider, the two family transports, and the JSON mapping helper)
// together with the two framers.
func NewDispatcher(auth AuthenticationProvider, rest RestTransport, graph GraphTransport, mapper JsonMappingHelper, graphBaseURI string) *Dispatcher {
	return &Dispatcher{
		auth:         auth,
		rest:         rest,
		graph:        graph,
		mapper:       mapper,
		restFramer:   NewRestFramer(),
		graphFramer:  NewGraphFramer(),
		graphBaseURI: graphBaseURI,
	}
}

// dispatchUnit sends and parses one dispatch unit's worth of HTTP traffic.
func (d *Dispatcher) dispatchUnit(ctx context.Context, unit dispatchUnit) error {
	switch unit.family {
	case FamilyREST:
		return d.dispatchREST(ctx, unit.batch)
	case FamilyGraph:
		return d.dispatchGraph(ctx, unit.batch)
	default:
		return nil
	}
}

// dispatchREST partitions the batch by site and sends one HTTP call per
// site, strictly in order: servers are assumed single-site per call, and
// per spec §5 sub-batches run sequentially rather than in parallel.
func (d *Dispatcher) dispatchREST(ctx context.Context, b *Batch) error {
	sites, grouped := partitionBySite(b.Requests())

	for _, site := range sites {
		reqs := grouped[site]

		logging.Debug("framing REST sub-batch %s for site %s (%d request(s))", logging.FormatBatchID(b.ID), site, len(reqs))

		httpReq, err := d.restFramer.frame(site, reqs, b.ID)
		if err != nil {
			return err
		}

		if err := d.auth.Authenticate(ctx, site, httpReq); err != nil {
			return wrapTransportErr(ctx, site, err)
		}

		resp, err := d.rest.Send(ctx, httpReq)
		if err != nil {
			return wrapTransportErr(ctx, site, err)
		}
		if resp.Status/100 != 2 {
			return &TransportFailure{URL: httpReq.URL.String(), Status: resp.Status, Body: resp.Body}
		}

		if err := d.restFramer.parseResponse(reqs, resp.Body); err != nil {
			return err
		}

		if err := d.mapResponses(reqs); err != nil {
			return err
		}
	}

	return nil
}

// dispatchGraph sends the batch's single JSON envelope and parses it.
func (d *Dispatcher) dispatchGraph(ctx context.Context, b *Batch) error {
	reqs := b.Requests()

	logging.Debug("framing GRAPH batch %s (%d request(s))", logging.FormatBatchID(b.ID), len(reqs))

	httpReq, err := d.graphFramer.frame(reqs, d.graphBaseURI)
	if err != nil {
		return err
	}

	if err := d.auth.Authenticate(ctx, d.graphBaseURI, httpReq); err != nil {
		return wrapTransportErr(ctx, d.graphBaseURI, err)
	}

	resp, err := d.graph.Send(ctx, httpReq)
	if err != nil {
		return wrapTransportErr(ctx, d.graphBaseURI, err)
	}
	if resp.Status/100 != 2 {
		return &TransportFailure{URL: httpReq.URL.String(), Status: resp.Status, Body: resp.Body}
	}

	if err := d.graphFramer.parseResponse(b, resp.Body); err != nil {
		return err
	}

	return d.mapResponses(reqs)
}

// mapResponses drives every responded request in reqs through the
// caller-supplied casting/mapping/post-mapping callbacks, then commits any
// transient model whose PATCH just completed successfully. Commit runs for
// every responded PATCH independent of body presence: a successful
// SharePoint PATCH normally answers 204 No Content, which attachResponse
// records with an empty body, and that still has to commit.
func (d *Dispatcher) mapResponses(reqs []*Request) error {
	for _, req := range reqs {
		body, ok := req.ResponseJSON()
		if !ok {
			continue
		}

		if body != "" {
			if req.fromJSONCasting != nil {
				if err := req.fromJSONCasting(body); err != nil {
					return err
				}
			}

			if d.mapper != nil {
				if err := d.mapper.Map(req); err != nil {
					return err
				}
			}

			if req.postMappingJSON != nil {
				if err := req.postMappingJSON(req.model); err != nil {
					return err
				}
			}
		}

		if req.method == MethodPatch {
			if transient, ok := req.model.(TransientObject); ok {
				transient.Commit()
			}
		}
	}
	return nil
}

// wrapTransportErr distinguishes caller cancellation (surfaced verbatim so
// callers can errors.Is against context.Canceled/DeadlineExceeded, per the
// spec's "batch stays Open" cancellation policy) from a genuine connection
// failure, which is reported as a TransportFailure.
func wrapTransportErr(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return &TransportFailure{URL: url, Status: 0, Body: err.Error()}
}
