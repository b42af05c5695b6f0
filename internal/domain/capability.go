package domain

type Role string

const (
	RoleEmployee    Role = "EMPLOYEE"
	RoleDeptHead    Role = "DEPT_HEAD"
	RoleHRAdmin     Role = "HR_ADMIN"
	RoleHRHead      Role = "HR_HEAD"
	RoleCEO         Role = "CEO"
	RoleSystemAdmin Role = "SYSTEM_ADMIN"
)

// ApprovalChain is the canonical approver order for every leave request.
var ApprovalChain = []Role{RoleDeptHead, RoleHRAdmin, RoleHRHead, RoleCEO}

// Rank orders roles along the approval chain. Roles outside the chain rank 0.
func (r Role) Rank() int {
	switch r {
	case RoleDeptHead:
		return 1
	case RoleHRAdmin:
		return 2
	case RoleHRHead:
		return 3
	case RoleCEO:
		return 4
	default:
		return 0
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleDeptHead, RoleHRAdmin, RoleHRHead, RoleCEO, RoleSystemAdmin:
		return true
	}
	return false
}

type LeaveType string

const (
	LeaveEarned        LeaveType = "EARNED"
	LeaveCasual        LeaveType = "CASUAL"
	LeaveMedical       LeaveType = "MEDICAL"
	LeaveExtraordinary LeaveType = "EXTRAORDINARY"
	LeaveMaternity     LeaveType = "MATERNITY"
	LeavePaternity     LeaveType = "PATERNITY"
	LeaveStudy         LeaveType = "STUDY"
)

var LeaveTypes = []LeaveType{
	LeaveEarned, LeaveCasual, LeaveMedical, LeaveExtraordinary,
	LeaveMaternity, LeavePaternity, LeaveStudy,
}

func (t LeaveType) Valid() bool {
	for _, lt := range LeaveTypes {
		if lt == t {
			return true
		}
	}
	return false
}

// Resources and actions used by the capability table.
const (
	ResourceLeave        = "leave"
	ResourceBalance      = "balance"
	ResourcePolicy       = "policy"
	ResourceHoliday      = "holiday"
	ResourceAudit        = "audit"
	ResourceReport       = "report"
	ResourceJobs         = "jobs"
	ResourceUser         = "user"
	ResourceNotification = "notification"

	ActionCreate   = "create"
	ActionRead     = "read"
	ActionReadAll  = "read_all"
	ActionDecide   = "decide"
	ActionCancel   = "cancel"
	ActionRecall   = "recall"
	ActionUpdate   = "update"
	ActionManage   = "manage"
	ActionAdjust   = "adjust"
	ActionRun      = "run"
	ActionDownload = "download"
)

type Capability struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

func (c Capability) String() string {
	return c.Resource + ":" + c.Action
}

var employeeCapabilities = []Capability{
	{ResourceLeave, ActionCreate},
	{ResourceLeave, ActionRead},
	{ResourceBalance, ActionRead},
	{ResourcePolicy, ActionRead},
	{ResourceHoliday, ActionRead},
	{ResourceNotification, ActionRead},
	{ResourceReport, ActionDownload},
}

var approverCapabilities = append(append([]Capability{}, employeeCapabilities...),
	Capability{ResourceLeave, ActionDecide},
	Capability{ResourceLeave, ActionCancel},
)

var hrCapabilities = append(append([]Capability{}, approverCapabilities...),
	Capability{ResourceLeave, ActionReadAll},
	Capability{ResourceLeave, ActionRecall},
	Capability{ResourceBalance, ActionReadAll},
	Capability{ResourceBalance, ActionAdjust},
	Capability{ResourcePolicy, ActionUpdate},
	Capability{ResourceHoliday, ActionManage},
	Capability{ResourceAudit, ActionRead},
	Capability{ResourceReport, ActionRead},
	Capability{ResourceUser, ActionRead},
)

// Capabilities is the single role → operation table. The rbac enforcer, the
// HTTP middleware, the workflow core and GET /capabilities all read it.
var Capabilities = map[Role][]Capability{
	RoleEmployee: employeeCapabilities,
	RoleDeptHead: append(append([]Capability{}, approverCapabilities...),
		Capability{ResourceLeave, ActionReadAll},
	),
	RoleHRAdmin: append(append([]Capability{}, hrCapabilities...),
		Capability{ResourceUser, ActionManage},
		Capability{ResourceJobs, ActionRun},
	),
	RoleHRHead: hrCapabilities,
	RoleCEO:    hrCapabilities,
	RoleSystemAdmin: {
		{ResourceLeave, ActionCreate},
		{ResourceLeave, ActionRead},
		{ResourceLeave, ActionReadAll},
		{ResourceBalance, ActionRead},
		{ResourceBalance, ActionReadAll},
		{ResourceBalance, ActionAdjust},
		{ResourcePolicy, ActionRead},
		{ResourcePolicy, ActionUpdate},
		{ResourceHoliday, ActionRead},
		{ResourceHoliday, ActionManage},
		{ResourceAudit, ActionRead},
		{ResourceReport, ActionRead},
		{ResourceReport, ActionDownload},
		{ResourceJobs, ActionRun},
		{ResourceUser, ActionRead},
		{ResourceUser, ActionManage},
		{ResourceNotification, ActionRead},
	},
}

// Can reports whether role holds resource:action in the capability table.
func Can(role Role, resource, action string) bool {
	for _, c := range Capabilities[role] {
		if c.Resource == resource && c.Action == action {
			return true
		}
	}
	return false
}

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type RoleCapabilitiesResponse struct {
	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities"`
}
