// Package handlers implements spobatchctl's command execution logic,
// wiring internal/config, internal/auth, internal/transport, and
// batchclient together to run the demo batch.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/batchwerk/spobatch/batchclient"
	"github.com/batchwerk/spobatch/cmd/spobatchctl/config"
	"github.com/batchwerk/spobatch/cmd/spobatchctl/display"
	"github.com/batchwerk/spobatch/internal/auth"
	internalconfig "github.com/batchwerk/spobatch/internal/config"
	"github.com/batchwerk/spobatch/internal/entitymeta"
	"github.com/batchwerk/spobatch/internal/logging"
	"github.com/batchwerk/spobatch/internal/model"
	"github.com/batchwerk/spobatch/internal/testserver"
	"github.com/batchwerk/spobatch/internal/transport"
	"github.com/batchwerk/spobatch/internal/utils"
)

var demoEntityInfo = entitymeta.Info{RestKeyField: "Id", GraphKeyField: "id"}

// localAuth is a no-op AuthenticationProvider used in --local mode, where
// the in-process fake server does not check credentials.
type localAuth struct{}

func (localAuth) Authenticate(context.Context, string, *http.Request) error { return nil }

// HandleDemo runs the fixed demo batch and prints its reconciled results.
func HandleDemo(cmd *cobra.Command, _ []string) error {
	logging.SetLevel(config.Global.LogLevel)

	runID, err := utils.GenerateID()
	if err != nil {
		return fmt.Errorf("generating run id: %w", err)
	}
	logging.Info("spobatchctl: starting demo run %s", runID)

	local := config.Global.Local || config.Global.SiteURL == ""

	var (
		authProvider batchclient.AuthenticationProvider
		siteURL      string
		graphBaseURI string
		cleanup      func()
	)

	if local {
		srv := testserver.New()
		srv.SetRestResponder(func(string) (int, string) {
			return http.StatusOK,
				"HTTP/1.1 200 OK\r\n\r\n{\"d\":{\"Id\":\"web\",\"Title\":\"Team Site\"}}\r\n" +
					"HTTP/1.1 200 OK\r\n\r\n{\"d\":{\"Id\":\"lists\"}}\r\n"
		})
		// The Graph request is the batch's third (order 2), so the framer
		// sends it as id "3".
		srv.SetGraphResponder(func(string) (int, string) {
			return http.StatusOK, `{"responses":[{"id":"3","status":200,"body":{"id":"root","name":"root"}}]}`
		})
		base, err := srv.Start()
		if err != nil {
			return fmt.Errorf("starting local fake batch server: %w", err)
		}
		cleanup = func() { srv.Close() }
		authProvider = localAuth{}
		siteURL = base + "/sites/demo"
		graphBaseURI = base
	} else {
		cfg := &internalconfig.Config{
			SiteURL:      config.Global.SiteURL,
			GraphBaseURI: config.Global.GraphBaseURI,
			HTTPTimeout:  time.Duration(config.Global.Timeout) * time.Second,
			LogLevel:     config.Global.LogLevel,
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		tokenURL := config.Global.TokenURL
		if tokenURL == "" {
			tokenURL = fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", config.Global.TenantID)
		}
		creds := auth.Credentials{
			TenantID:     config.Global.TenantID,
			ClientID:     config.Global.ClientID,
			ClientSecret: config.Global.ClientSecret,
			Audience:     tokenURL,
		}
		if err := creds.Validate(); err != nil {
			return fmt.Errorf("invalid credentials: %w", err)
		}
		source := auth.NewAADTokenSource(tokenURL, cfg.GraphBaseURI+"/.default", config.Global.ClientID)
		authProvider = auth.NewProvider(creds, source)
		siteURL = cfg.SiteURL
		graphBaseURI = cfg.GraphBaseURI
		cleanup = func() {}
	}
	defer cleanup()

	timeout := time.Duration(config.Global.Timeout) * time.Second
	dispatcher := batchclient.NewDispatcher(
		authProvider,
		transport.NewRestTransport(timeout),
		transport.NewGraphTransport(timeout),
		model.NewJSONMapper(),
		graphBaseURI,
	)
	client := batchclient.NewBatchClient(dispatcher)

	web := model.NewEntity(nil)
	lists := model.NewEntity(nil)
	graphRoot := model.NewEntity(nil)

	b := client.EnsureBatch()
	b.Add(web, demoEntityInfo, batchclient.MethodGet, batchclient.FamilyREST,
		batchclient.Call{RequestURL: siteURL + "/_api/web"}, nil, nil, nil)
	b.Add(lists, demoEntityInfo, batchclient.MethodGet, batchclient.FamilyREST,
		batchclient.Call{RequestURL: siteURL + "/_api/web/lists"}, nil, nil, nil)
	b.Add(graphRoot, demoEntityInfo, batchclient.MethodGet, batchclient.FamilyGraph,
		batchclient.Call{RequestURL: "me/drive/root"}, nil, nil, nil)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	startedAt := time.Now()
	execErr := client.ExecuteBatch(ctx, b)
	elapsed := time.Since(startedAt)

	results := make([]display.OperationResult, 0, b.Len())
	for _, req := range b.Requests() {
		fields := ""
		if entity, ok := req.Model().(*model.Entity); ok {
			if id := entity.GetValue("Id"); id != nil {
				fields = fmt.Sprintf("Id=%v", id)
			} else if id := entity.GetValue("id"); id != nil {
				fields = fmt.Sprintf("id=%v", id)
			}
		}
		results = append(results, display.OperationResult{
			Order:  req.Order(),
			Family: req.Family().String(),
			Method: string(req.Method()),
			URL:    req.PrimaryCall().RequestURL,
			Status: req.ResponseStatus(),
			Fields: fields,
		})
	}

	display.DisplayResults(results, startedAt, elapsed)

	if execErr != nil {
		return fmt.Errorf("batch execution reported an error: %w", execErr)
	}
	return nil
}
