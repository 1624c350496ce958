package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shiprel/shiprel/pkg/domain/interfaces"
	"github.com/shiprel/shiprel/pkg/domain/model"
	"github.com/shiprel/shiprel/pkg/domain/types"
)

type client struct {
	githubClient *github.Client
}

// NewClient creates a ReleaseHost backed by the GitHub REST API with token
// authentication
func NewClient(token string) interfaces.ReleaseHost {
	return &client{
		githubClient: github.NewClient(nil).WithAuthToken(token),
	}
}

// GetReleaseByTag returns the release published for the exact tag name. A
// missing release yields a types.TagNotFound tagged error.
func (c *client) GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*model.HostedRelease, error) {
	release, resp, err := c.githubClient.Repositories.GetReleaseByTag(ctx, owner, repo, tag)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, goerr.Wrap(err, "release not found",
				goerr.T(types.TagNotFound),
				goerr.V("tag", tag),
			)
		}
		return nil, goerr.Wrap(err, "failed to get release by tag",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("tag", tag),
		)
	}

	return toHostedRelease(release), nil
}

// CreateRelease publishes a new release for the given tag
func (c *client) CreateRelease(ctx context.Context, owner, repo string, release *model.NewRelease) (*model.HostedRelease, error) {
	created, _, err := c.githubClient.Repositories.CreateRelease(ctx, owner, repo, &github.RepositoryRelease{
		TagName:    github.Ptr(release.TagName),
		Name:       github.Ptr(release.Name),
		Body:       github.Ptr(release.Body),
		Draft:      github.Ptr(release.Draft),
		Prerelease: github.Ptr(release.Prerelease),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create release",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("tag", release.TagName),
		)
	}

	return toHostedRelease(created), nil
}

// RefExists reports whether the ref exists on the remote. A 404 is confirmed
// absence; any other failure is returned as an error.
func (c *client) RefExists(ctx context.Context, owner, repo, ref string) (bool, error) {
	_, resp, err := c.githubClient.Git.GetRef(ctx, owner, repo, ref)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to look up ref",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("ref", ref),
		)
	}

	return true, nil
}

func toHostedRelease(r *github.RepositoryRelease) *model.HostedRelease {
	return &model.HostedRelease{
		ID:         r.GetID(),
		TagName:    r.GetTagName(),
		Name:       r.GetName(),
		URL:        r.GetHTMLURL(),
		Prerelease: r.GetPrerelease(),
	}
}
