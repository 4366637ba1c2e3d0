package policy

import "fmt"

// Role identifies what a user is allowed to do across the platform.
type Role string

// Platform roles.
const (
	RoleAdmin   Role = "admin"
	RoleTrainer Role = "trainer"
	RoleLearner Role = "learner"
)

// Valid reports whether the role is one of the known platform roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTrainer, RoleLearner:
		return true
	}
	return false
}

// Resource names an API resource governed by the policy table.
type Resource string

// Governed resources.
const (
	ResourceUsers         Resource = "users"
	ResourceCourses       Resource = "courses"
	ResourceModules       Resource = "modules"
	ResourceSchedules     Resource = "schedules"
	ResourceEnrollments   Resource = "enrollments"
	ResourceAttendance    Resource = "attendance"
	ResourceProfileFields Resource = "profile_fields"
)

// Action names an operation performed against a resource.
type Action string

// Supported actions. The custom actions map one-to-one onto route verbs
// that do not fit plain CRUD.
const (
	ActionRead   Action = "read"
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"

	ActionPublish      Action = "publish"
	ActionArchive      Action = "archive"
	ActionReorder      Action = "reorder"
	ActionReassign     Action = "reassign"
	ActionEnroll       Action = "enroll"
	ActionUnenroll     Action = "unenroll"
	ActionMark         Action = "mark"
	ActionListTrainers Action = "list_trainers"
	ActionListLearners Action = "list_learners"
)

// Identity is the authenticated caller for the current request. It is built
// from a verified token and discarded when the request ends.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}

// Descriptor describes what a request is trying to do. OwnerID must be
// resolved from the target record before ownership rules can evaluate.
type Descriptor struct {
	Resource Resource
	Action   Action
	TargetID string
	OwnerID  string
}

// Reason tags why a request was denied.
type Reason string

// Denial reasons. Handlers map these to transport status codes.
const (
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonNotAuthorized   Reason = "not_authorized"
	ReasonNotFound        Reason = "not_found"
	ReasonSelfDelete      Reason = "self_delete"
)

// Scope is an implicit row filter attached to list decisions. Repositories
// AND the scope with whatever filters the caller supplied.
type Scope string

// List scopes.
const (
	ScopeNone           Scope = ""
	ScopeOwnEnrollments Scope = "own_enrollments"
	ScopeOwnRows        Scope = "own_rows"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  Reason
	Scope   Scope
}

// DeniedError carries a denial reason through service error returns.
type DeniedError struct {
	Reason Reason
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("access denied: %s", e.Reason)
}

// Denied wraps a denial decision into an error for service layers.
func Denied(reason Reason) error {
	return &DeniedError{Reason: reason}
}

// Rule declares who may perform one action on one resource.
type Rule struct {
	Resource Resource
	Action   Action
	// Roles allowed to attempt the action. Empty means any authenticated role.
	Roles []Role
	// OwnerOnly lists roles that must additionally own the target record.
	// Admin is never subject to ownership checks.
	OwnerOnly []Role
	// Scopes attaches implicit row filters to list decisions, per role.
	Scopes map[Role]Scope
	// DenySelf rejects the action when the target is the caller's own record,
	// regardless of role.
	DenySelf bool
}

type ruleKey struct {
	resource Resource
	action   Action
}

// Engine evaluates access decisions against an immutable rule table. It is
// built once at startup and safe for concurrent use; it performs no I/O.
type Engine struct {
	rules map[ruleKey]Rule
}

// NewEngine builds an engine from the supplied rules. Duplicate
// (resource, action) pairs panic: the table is static configuration and a
// duplicate is a programming error.
func NewEngine(rules []Rule) *Engine {
	table := make(map[ruleKey]Rule, len(rules))
	for _, rule := range rules {
		key := ruleKey{resource: rule.Resource, action: rule.Action}
		if _, exists := table[key]; exists {
			panic(fmt.Sprintf("policy: duplicate rule for %s/%s", rule.Resource, rule.Action))
		}
		table[key] = rule
	}
	return &Engine{rules: table}
}

// Authorize decides whether the identity may perform the described operation.
// Combinations without a declared rule are denied.
func (e *Engine) Authorize(identity Identity, descriptor Descriptor) Decision {
	if identity.UserID == "" || !identity.Role.Valid() {
		return Decision{Reason: ReasonUnauthenticated}
	}

	rule, ok := e.rules[ruleKey{resource: descriptor.Resource, action: descriptor.Action}]
	if !ok {
		return Decision{Reason: ReasonNotAuthorized}
	}

	if rule.DenySelf && descriptor.TargetID != "" && descriptor.TargetID == identity.UserID {
		return Decision{Reason: ReasonSelfDelete}
	}

	if len(rule.Roles) > 0 && !containsRole(rule.Roles, identity.Role) {
		return Decision{Reason: ReasonNotAuthorized}
	}

	if containsRole(rule.OwnerOnly, identity.Role) && identity.Role != RoleAdmin {
		if descriptor.OwnerID == "" {
			return Decision{Reason: ReasonNotFound}
		}
		if descriptor.OwnerID != identity.UserID {
			return Decision{Reason: ReasonNotAuthorized}
		}
	}

	return Decision{Allowed: true, Scope: rule.Scopes[identity.Role]}
}

func containsRole(roles []Role, role Role) bool {
	for _, candidate := range roles {
		if candidate == role {
			return true
		}
	}
	return false
}
