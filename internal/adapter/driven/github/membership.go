package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ericfisherdev/multiapprovers/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.MembershipChecker = (*TeamMembership)(nil)

// Team membership values reported by the GitHub Teams API.
const (
	teamRoleMaintainer = "maintainer"
	teamRoleMember     = "member"
	teamStateActive    = "active"
)

// TeamMembership implements driven.MembershipChecker by querying membership
// of a single organization team.
type TeamMembership struct {
	client *Client
	org    string
	team   string
}

// NewTeamMembership returns a checker for members of org/team (team is the slug).
func NewTeamMembership(client *Client, org, team string) *TeamMembership {
	return &TeamMembership{
		client: client,
		org:    org,
		team:   team,
	}
}

// IsMember reports whether login is an active maintainer or member of the
// team. Pending invitations do not count. A 404 means the login is not on the
// team and is not an error.
func (m *TeamMembership) IsMember(ctx context.Context, login string) (bool, error) {
	membership, resp, err := m.client.gh.Teams.GetTeamMembershipBySlug(ctx, m.org, m.team, login)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			slog.Debug("login not on team", "org", m.org, "team", m.team, "login", login)
			return false, nil
		}
		return false, fmt.Errorf("checking membership of %s in %s/%s: %w", login, m.org, m.team, err)
	}

	logRateLimit(resp, m.org+"/"+m.team+"/membership", 0, 1)

	role := membership.GetRole()
	if role != teamRoleMaintainer && role != teamRoleMember {
		return false, nil
	}
	return membership.GetState() == teamStateActive, nil
}
