// Package github provides an issue tracker adapter that files support
// tickets as GitHub issues.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/supporta-cli/internal/core/domain"
	"github.com/custodia-labs/supporta-cli/internal/core/ports/driven"
	"github.com/custodia-labs/supporta-cli/internal/logger"
)

// Ensure Tracker implements the interface.
var _ driven.IssueTracker = (*Tracker)(nil)

const (
	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// ProactiveRate throttles issue creation well under GitHub's
	// secondary rate limits.
	ProactiveRate = 1.2

	// TitlePrefix marks tickets filed by the assistant.
	TitlePrefix = "[Support] "
)

// ticketLabels are attached to every filed issue.
var ticketLabels = []string{"support", "customer-inquiry"}

// Config holds configuration for the GitHub tracker.
type Config struct {
	// Token is a GitHub access token. Empty runs the tracker in
	// simulated mode: Create succeeds without a network call.
	Token string

	// Repo is the target repository in "owner/name" format. Empty runs
	// the tracker in simulated mode.
	Repo string

	// BaseURL overrides the API base URL (used in tests).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Tracker files support tickets as GitHub issues. A tracker without a
// token or repository runs in simulated mode so the assistant stays
// usable in unconfigured environments.
type Tracker struct {
	gh         *gh.Client
	owner      string
	repo       string
	configured bool
	limiter    *rate.Limiter
}

// New creates a GitHub tracker. Missing token or repo is not an error;
// the tracker degrades to simulated mode.
func New(ctx context.Context, cfg Config) (*Tracker, error) {
	t := &Tracker{
		limiter: rate.NewLimiter(rate.Limit(ProactiveRate), 1),
	}

	if cfg.Repo != "" {
		owner, repo, ok := strings.Cut(cfg.Repo, "/")
		if !ok || owner == "" || repo == "" {
			return nil, fmt.Errorf("github: repo must be in owner/name format, got %q", cfg.Repo)
		}
		t.owner, t.repo = owner, repo
	}

	if cfg.Token == "" || cfg.Repo == "" {
		return t, nil
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = cfg.Timeout

	client := gh.NewClient(tc)
	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("github: parse base URL: %w", err)
		}
		client.BaseURL = base
	}

	t.gh = client
	t.configured = true
	return t, nil
}

// Create files one ticket. It never returns an error: network and API
// faults come back as a TicketResult with Success false, which the
// chat loops hand to the model as a structured tool result.
func (t *Tracker) Create(ctx context.Context, req domain.TicketRequest) domain.TicketResult {
	result := domain.TicketResult{
		Title:     req.Title,
		UserName:  req.UserName,
		UserEmail: req.UserEmail,
	}

	if !t.configured {
		logger.Warn("GitHub tracker not configured; returning simulated ticket")
		result.Success = true
		result.Simulated = true
		if t.owner != "" {
			result.TicketURL = fmt.Sprintf("https://github.com/%s/%s/issues/new", t.owner, t.repo)
		}
		return result
	}

	if err := t.limiter.Wait(ctx); err != nil {
		result.Error = fmt.Sprintf("rate limit wait: %v", err)
		return result
	}

	issue, _, err := t.gh.Issues.Create(ctx, t.owner, t.repo, &gh.IssueRequest{
		Title:  gh.Ptr(TitlePrefix + req.Title),
		Body:   gh.Ptr(issueBody(req)),
		Labels: &ticketLabels,
	})
	if err != nil {
		result.Error = wrapError(err).Error()
		logger.Error("Ticket creation failed: %s", result.Error)
		return result
	}

	logger.Info("Created ticket #%d: %s", issue.GetNumber(), issue.GetHTMLURL())
	result.Success = true
	result.TicketID = issue.GetNumber()
	result.TicketURL = issue.GetHTMLURL()
	return result
}

// ValidateConfig reports whether the tracker can reach its repository.
func (t *Tracker) ValidateConfig(ctx context.Context) bool {
	if !t.configured {
		return false
	}
	if err := t.limiter.Wait(ctx); err != nil {
		return false
	}
	_, _, err := t.gh.Repositories.Get(ctx, t.owner, t.repo)
	return err == nil
}

// issueBody renders the support ticket template.
func issueBody(req domain.TicketRequest) string {
	return fmt.Sprintf(`**Support Ticket**

**User Information:**
- Name: %s
- Email: %s
- Date: %s

**Description:**
%s

---
*This ticket was automatically created by the Supporta assistant*
`, req.UserName, req.UserEmail, time.Now().Format("2006-01-02 15:04:05"), req.Description)
}

// wrapError converts go-github errors into a reason the chat loops can
// show. Rate-limit faults wrap domain.ErrRateLimited so callers can
// distinguish them with errors.Is.
func wrapError(err error) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%w: GitHub limit resets at %s",
			domain.ErrRateLimited, rateErr.Rate.Reset.Time.Format(time.RFC3339))
	}
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return fmt.Errorf("GitHub API error: %d - %s", ghErr.Response.StatusCode, ghErr.Message)
	}
	return fmt.Errorf("create ticket: %w", err)
}
