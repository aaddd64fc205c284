// Package config holds the settings for a test run: where the Story API lives, which account
// to authenticate with, and the story data that the tests send.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/storyspoiler/story-contract-tests/servicedef"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL     = "https://d3s5nxhwblsjbi.cloudfront.net"
	DefaultUsername    = "KolBoi"
	DefaultPassword    = "KolKol1"
	DefaultFakeStoryID = "123"
	DefaultTimeout     = time.Second * 30
)

var (
	DefaultStory = servicedef.StoryParams{
		Title:       "New story",
		Description: "Malko skuchno",
		URL:         "http://123.png",
	}
	DefaultEditedStory = servicedef.StoryParams{
		Title:       "Updated story title",
		Description: "New desc",
		URL:         "",
	}
	DefaultNonexistentStoryEdit = servicedef.StoryParams{
		Title:       "new title",
		Description: "new desc",
		URL:         "",
	}
)

// Config is the full set of parameters for a test run.
type Config struct {
	BaseURL  string `yaml:"base_url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// FakeStoryID is an ID that the API is not expected to know about.
	FakeStoryID string `yaml:"fake_story_id"`

	// Timeout applies to each HTTP request. Zero means no timeout beyond the transport's own.
	Timeout time.Duration `yaml:"timeout"`

	Story                servicedef.StoryParams `yaml:"story"`
	EditedStory          servicedef.StoryParams `yaml:"edited_story"`
	NonexistentStoryEdit servicedef.StoryParams `yaml:"nonexistent_story_edit"`
}

func Default() Config {
	return Config{
		BaseURL:              DefaultBaseURL,
		Username:             DefaultUsername,
		Password:             DefaultPassword,
		FakeStoryID:          DefaultFakeStoryID,
		Timeout:              DefaultTimeout,
		Story:                DefaultStory,
		EditedStory:          DefaultEditedStory,
		NonexistentStoryEdit: DefaultNonexistentStoryEdit,
	}
}

// Load reads a YAML file on top of the defaults. Keys that are absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL %q must be an absolute http or https URL", c.BaseURL)
	}
	if c.FakeStoryID == "" {
		return errors.New("fake story ID must not be empty")
	}
	if c.Story.Title == "" || c.Story.Description == "" {
		return errors.New("story title and description must not be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}
