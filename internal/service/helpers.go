package service

import "github.com/noah-isme/talenta-go-api/internal/policy"

// authorize runs a policy check and converts a denial into an error carrying
// the denial reason. The decision is returned for callers that need the
// attached list scope.
func authorize(engine *policy.Engine, identity policy.Identity, descriptor policy.Descriptor) (policy.Decision, error) {
	decision := engine.Authorize(identity, descriptor)
	if !decision.Allowed {
		return decision, policy.Denied(decision.Reason)
	}
	return decision, nil
}
