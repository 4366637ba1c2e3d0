package policy

var anyRole = []Role{RoleAdmin, RoleTrainer, RoleLearner}

// DefaultRules is the full access table for the API. Every reachable
// (resource, action) pair must appear here; anything missing is denied.
func DefaultRules() []Rule {
	return []Rule{
		// Users. Learners and trainers may read/update only their own record,
		// admins manage everyone. Nobody deletes their own account.
		{Resource: ResourceUsers, Action: ActionList, Roles: []Role{RoleAdmin, RoleTrainer}},
		{Resource: ResourceUsers, Action: ActionRead, Roles: anyRole, OwnerOnly: []Role{RoleLearner}},
		{Resource: ResourceUsers, Action: ActionCreate, Roles: []Role{RoleAdmin}},
		{Resource: ResourceUsers, Action: ActionUpdate, Roles: anyRole, OwnerOnly: []Role{RoleTrainer, RoleLearner}},
		{Resource: ResourceUsers, Action: ActionDelete, Roles: []Role{RoleAdmin}, DenySelf: true},
		{Resource: ResourceUsers, Action: ActionListTrainers, Roles: anyRole},
		{Resource: ResourceUsers, Action: ActionListLearners, Roles: []Role{RoleAdmin, RoleTrainer}},

		// Courses are readable by everyone, writable by admins only.
		{Resource: ResourceCourses, Action: ActionList, Roles: anyRole},
		{Resource: ResourceCourses, Action: ActionRead, Roles: anyRole},
		{Resource: ResourceCourses, Action: ActionCreate, Roles: []Role{RoleAdmin}},
		{Resource: ResourceCourses, Action: ActionUpdate, Roles: []Role{RoleAdmin}},
		{Resource: ResourceCourses, Action: ActionDelete, Roles: []Role{RoleAdmin}},
		{Resource: ResourceCourses, Action: ActionPublish, Roles: []Role{RoleAdmin}},
		{Resource: ResourceCourses, Action: ActionArchive, Roles: []Role{RoleAdmin}},

		// Course modules follow the course write policy.
		{Resource: ResourceModules, Action: ActionList, Roles: anyRole},
		{Resource: ResourceModules, Action: ActionCreate, Roles: []Role{RoleAdmin}},
		{Resource: ResourceModules, Action: ActionUpdate, Roles: []Role{RoleAdmin}},
		{Resource: ResourceModules, Action: ActionDelete, Roles: []Role{RoleAdmin}},
		{Resource: ResourceModules, Action: ActionReorder, Roles: []Role{RoleAdmin}},

		// Schedules. Learners only see schedules they are enrolled in;
		// trainers write only their own schedules; reassigning the trainer
		// is an admin action.
		{Resource: ResourceSchedules, Action: ActionList, Roles: anyRole, Scopes: map[Role]Scope{RoleLearner: ScopeOwnEnrollments}},
		{Resource: ResourceSchedules, Action: ActionRead, Roles: anyRole},
		{Resource: ResourceSchedules, Action: ActionCreate, Roles: []Role{RoleAdmin, RoleTrainer}},
		{Resource: ResourceSchedules, Action: ActionUpdate, Roles: []Role{RoleAdmin, RoleTrainer}, OwnerOnly: []Role{RoleTrainer}},
		{Resource: ResourceSchedules, Action: ActionDelete, Roles: []Role{RoleAdmin, RoleTrainer}, OwnerOnly: []Role{RoleTrainer}},
		{Resource: ResourceSchedules, Action: ActionReassign, Roles: []Role{RoleAdmin}},

		// Enrollment management is staff work.
		{Resource: ResourceEnrollments, Action: ActionEnroll, Roles: []Role{RoleAdmin, RoleTrainer}},
		{Resource: ResourceEnrollments, Action: ActionUnenroll, Roles: []Role{RoleAdmin, RoleTrainer}},

		// Attendance is readable by everyone, learners restricted to their
		// own rows; marking is staff work.
		{Resource: ResourceAttendance, Action: ActionList, Roles: anyRole, Scopes: map[Role]Scope{RoleLearner: ScopeOwnRows}},
		{Resource: ResourceAttendance, Action: ActionMark, Roles: []Role{RoleAdmin, RoleTrainer}},

		// Profile field definitions.
		{Resource: ResourceProfileFields, Action: ActionList, Roles: anyRole},
		{Resource: ResourceProfileFields, Action: ActionRead, Roles: anyRole},
		{Resource: ResourceProfileFields, Action: ActionCreate, Roles: []Role{RoleAdmin}},
		{Resource: ResourceProfileFields, Action: ActionUpdate, Roles: []Role{RoleAdmin}},
		{Resource: ResourceProfileFields, Action: ActionDelete, Roles: []Role{RoleAdmin}},
		{Resource: ResourceProfileFields, Action: ActionReorder, Roles: []Role{RoleAdmin}},
	}
}

// NewDefaultEngine builds the engine over the default access table.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultRules())
}
