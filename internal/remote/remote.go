// Package remote fetches skill sources from GitHub repositories so the
// docs generator can build reference pages for a collection that is not
// checked out locally.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/go-github/v67/github"
	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"
)

// Client wraps the go-github client.
type Client struct {
	gh            *github.Client
	authenticated bool
}

// New creates a GitHub client.
// Token resolution order: GITHUB_TOKEN, GH_TOKEN, gh CLI config, unauthenticated.
func New() *Client {
	token := getToken()

	var httpClient *http.Client
	authenticated := false

	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		authenticated = true
	}

	return &Client{
		gh:            github.NewClient(httpClient),
		authenticated: authenticated,
	}
}

// IsAuthenticated returns true if the client has a token.
func (c *Client) IsAuthenticated() bool {
	return c.authenticated
}

// SplitRepo parses an "owner/repo" reference.
func SplitRepo(ref string) (owner, repo string, err error) {
	parts := strings.Split(ref, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository reference %q (want owner/repo)", ref)
	}
	return parts[0], parts[1], nil
}

// Skill is one remote skill: its directory slug and SKILL.md content.
type Skill struct {
	Slug    string
	Content []byte
}

// FindSkills scans the repository's skills/ directory for subdirectories
// containing a SKILL.md and fetches each one, sorted by slug.
func (c *Client) FindSkills(ctx context.Context, owner, repo string) ([]Skill, error) {
	_, dirContents, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, "skills", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills directory: %w", err)
	}

	var slugs []string
	for _, item := range dirContents {
		if item.GetType() == "dir" {
			slugs = append(slugs, item.GetName())
		}
	}
	sort.Strings(slugs)

	var skills []Skill
	for _, slug := range slugs {
		content, err := c.GetFile(ctx, owner, repo, "skills/"+slug+"/SKILL.md")
		if err != nil {
			// Directories without a SKILL.md are not skills.
			continue
		}
		skills = append(skills, Skill{Slug: slug, Content: content})
	}

	return skills, nil
}

// GetFile fetches one file's decoded content from a repository.
func (c *Client) GetFile(ctx context.Context, owner, repo, path string) ([]byte, error) {
	fileContent, _, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get contents: %w", err)
	}
	if fileContent == nil {
		return nil, fmt.Errorf("path is a directory, not a file")
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}
	return []byte(content), nil
}

// getToken attempts to get a GitHub token from various sources.
func getToken() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	if token := os.Getenv("GH_TOKEN"); token != "" {
		return token
	}
	return readGhToken()
}

// ghHostsConfig represents the gh CLI hosts.yml config.
type ghHostsConfig map[string]struct {
	OAuthToken string `yaml:"oauth_token"`
}

// readGhToken reads the GitHub token from gh CLI config.
func readGhToken() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	hostsPath := filepath.Join(homeDir, ".config", "gh", "hosts.yml")
	data, err := os.ReadFile(hostsPath)
	if err != nil {
		return ""
	}

	var hosts ghHostsConfig
	if err := yaml.Unmarshal(data, &hosts); err != nil {
		return ""
	}
	if host, ok := hosts["github.com"]; ok {
		return host.OAuthToken
	}
	return ""
}
