package driven

import "context"

// MembershipChecker answers whether a login belongs to the trusted group.
type MembershipChecker interface {
	IsMember(ctx context.Context, login string) (bool, error)
}
