package main

import (
	"os"
	"testing"

	"github.com/getmockd/reqparam/pkg/cli"
	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain registers the CLI so scripts can exec it without building a binary.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"reqparam": cli.Main,
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			env.Setenv("REQPARAM_ROUTES", "")
			env.Setenv("REQPARAM_LOG_LEVEL", "")
			env.Setenv("REQPARAM_LOG_FORMAT", "")
			return nil
		},
	})
}
