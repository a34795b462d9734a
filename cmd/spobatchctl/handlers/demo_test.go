package handlers

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/batchwerk/spobatch/cmd/spobatchctl/config"
)

func TestHandleDemoLocalModeSucceeds(t *testing.T) {
	config.Global.Local = true
	config.Global.SiteURL = ""
	config.Global.LogLevel = "ERROR"
	config.Global.Timeout = 5
	config.Global.Output = "table"

	cmd := &cobra.Command{Use: "demo"}
	if err := HandleDemo(cmd, nil); err != nil {
		t.Fatalf("HandleDemo returned error in local mode: %v", err)
	}
}
