package service

import (
	"context"
	"fmt"

	"tee-factory/models"
)

// GitHubHosting is the zero-credential fallback: design files committed to
// the repository are reachable through GitHub's raw CDN. No upload happens;
// the URL is derived from the repository name.
// Implements HostingProvider.
type GitHubHosting struct {
	repo string // owner/repo
}

// Ensure GitHubHosting implements HostingProvider
var _ HostingProvider = (*GitHubHosting)(nil)

// NewGitHubHosting creates the raw-URL fallback provider.
func NewGitHubHosting(repo string) (*GitHubHosting, error) {
	if repo == "" {
		return nil, fmt.Errorf("%w: GITHUB_REPOSITORY is not set", models.ErrConfig)
	}
	return &GitHubHosting{repo: repo}, nil
}

// Name returns the provider identifier.
func (h *GitHubHosting) Name() string { return "github" }

// Host builds the raw.githubusercontent.com URL for a file on main.
func (h *GitHubHosting) Host(_ context.Context, _ string, filename string) (string, error) {
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/main/%s", h.repo, filename), nil
}
