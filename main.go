package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/storyspoiler/story-contract-tests/client"
	"github.com/storyspoiler/story-contract-tests/framework"
	"github.com/storyspoiler/story-contract-tests/mockapi"
	"github.com/storyspoiler/story-contract-tests/storytests"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	var params commandParams
	if !params.Read(args, errOut) {
		return 1
	}
	cfg, err := params.Config()
	if err != nil {
		fmt.Fprintf(errOut, "Invalid configuration: %s\n", err)
		return 1
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(out, "", log.LstdFlags)
	}

	if params.mock {
		mock := mockapi.NewServer(cfg.Username, cfg.Password, framework.WithPrefix(mainDebugLogger, "[mock] "))
		server, err := framework.StartServer(params.mockPort, mock, mainDebugLogger)
		if err != nil {
			fmt.Fprintf(errOut, "Mock API error: %s\n", err)
			return 1
		}
		defer func() { _ = server.Close() }()
		fmt.Fprintf(out, "Started mock Story API at %s\n", cfg.BaseURL)
	}

	apiClient := client.NewAPIClient(cfg.BaseURL, cfg.Timeout, mainDebugLogger)
	defer apiClient.Close()

	fmt.Fprintf(out, "Authenticating as %q at %s\n", cfg.Username, apiClient.BaseURL())
	if err := storytests.Authenticate(apiClient, cfg, params.allowEmptyToken); err != nil {
		fmt.Fprintf(errOut, "Authentication error: %s\n", err)
		return 1
	}
	if apiClient.Token() == "" {
		fmt.Fprintln(out, "No access token was returned; continuing without one")
	}

	fmt.Fprintln(out)
	framework.PrintFilterDescription(out, params.filters)

	fmt.Fprintln(out, "Running test suite")

	testLogger := &ConsoleTestLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := storytests.RunTestSuite(apiClient, cfg, params.filters.AsFilter, testLogger)

	fmt.Fprintln(out)
	framework.PrintResults(out, results)
	if !results.OK() {
		fmt.Fprintf(out, "\nTo rerun the failed tests:\n  %s\n", rerunCommand(args, results.Failures))
		return 1
	}
	return 0
}
