package main

import (
	"flag"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/storyspoiler/story-contract-tests/config"
	"github.com/storyspoiler/story-contract-tests/framework"

	"github.com/alessio/shellescape"
)

const (
	defaultMockPort  = 8111
	redactedPassword = "<password>"
)

type commandParams struct {
	configFile      string
	baseURL         string
	username        string
	password        string
	timeout         time.Duration
	filters         framework.RegexFilters
	allowEmptyToken bool
	mock            bool
	mockPort        int
	debug           bool
	debugAll        bool
	setFlags        map[string]bool
}

func (c *commandParams) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&c.configFile, "config", "", "YAML file with test run settings")
	fs.StringVar(&c.baseURL, "url", config.DefaultBaseURL, "base URL of the Story API")
	fs.StringVar(&c.username, "user", config.DefaultUsername, "username to authenticate with")
	fs.StringVar(&c.password, "password", config.DefaultPassword, "password to authenticate with")
	fs.DurationVar(&c.timeout, "timeout", config.DefaultTimeout, "timeout for each HTTP request (0 for none)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.allowEmptyToken, "allow-empty-token", false, "run the tests even if authentication returns no token")
	fs.BoolVar(&c.mock, "mock", false, "start a mock Story API and test against it instead of -url")
	fs.IntVar(&c.mockPort, "mock-port", defaultMockPort, "port for the mock Story API")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	return fs
}

func (c *commandParams) Read(args []string, errOut io.Writer) bool {
	fs := c.flagSet(args[0])
	fs.SetOutput(errOut)
	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(errOut, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return false
	}
	c.setFlags = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { c.setFlags[f.Name] = true })
	return true
}

// Config builds the run configuration: defaults, then the config file if any, then any flags
// that were given explicitly.
func (c *commandParams) Config() (config.Config, error) {
	cfg := config.Default()
	if c.configFile != "" {
		var err error
		if cfg, err = config.Load(c.configFile); err != nil {
			return config.Config{}, err
		}
	}
	if c.setFlags["url"] {
		cfg.BaseURL = c.baseURL
	}
	if c.setFlags["user"] {
		cfg.Username = c.username
	}
	if c.setFlags["password"] {
		cfg.Password = c.password
	}
	if c.setFlags["timeout"] {
		cfg.Timeout = c.timeout
	}
	if c.mock {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%d", c.mockPort)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand returns a command line that repeats this run, but only for the top-level test
// groups that had failures. Whole groups are rerun because tests within a group depend on each
// other. The password is replaced with a placeholder, since the command is printed to the console.
func rerunCommand(args []string, failures []framework.TestResult) string {
	var params commandParams
	fs := params.flagSet(args[0])
	fs.SetOutput(io.Discard)
	_ = fs.Parse(args[1:])

	var b commandBuilder
	b.add(args[0])
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "run", "skip":
			return
		case "password":
			b.add("-password", redactedPassword)
			return
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			if f.Value.String() == "true" {
				b.add("-" + f.Name)
			} else {
				b.add("-" + f.Name + "=" + f.Value.String())
			}
			return
		}
		b.add("-"+f.Name, f.Value.String())
	})
	seen := make(map[string]bool)
	for _, f := range failures {
		if len(f.TestID.Path) == 0 || seen[f.TestID.Path[0]] {
			continue
		}
		seen[f.TestID.Path[0]] = true
		b.add("-run", "^"+regexp.QuoteMeta(f.TestID.Path[0])+"$")
	}
	return b.String()
}
