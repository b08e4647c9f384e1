// Package roster implements the MembershipChecker port with a static list of
// logins supplied in configuration.
package roster

import (
	"context"
	"strings"

	"github.com/ericfisherdev/multiapprovers/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.MembershipChecker = (*Roster)(nil)

// Roster is an immutable set of trusted logins. Lookups are exact matches and
// never touch the network.
type Roster struct {
	members map[string]struct{}
}

// New builds a Roster from the given logins. Surrounding whitespace is
// trimmed and empty entries are ignored.
func New(logins []string) *Roster {
	members := make(map[string]struct{}, len(logins))
	for _, login := range logins {
		login = strings.TrimSpace(login)
		if login == "" {
			continue
		}
		members[login] = struct{}{}
	}
	return &Roster{members: members}
}

// IsMember reports whether login is on the roster.
func (r *Roster) IsMember(_ context.Context, login string) (bool, error) {
	_, ok := r.members[login]
	return ok, nil
}

// Len returns the number of distinct logins on the roster.
func (r *Roster) Len() int {
	return len(r.members)
}
