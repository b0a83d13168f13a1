package rbac

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

// defaultPolicy is what the api enforces. Ownership (an employee only seeing
// their own rows) is checked in the handlers on top of these rules.
var defaultPolicy = [][]string{
	{RoleAdmin, "*", "*"},

	{RoleEmployee, "employee", "read"},
	{RoleEmployee, "payslip", "list"},
	{RoleEmployee, "payslip", "read"},
	{RoleEmployee, "payroll", "history"},
	{RoleEmployee, "payroll", "report"},
	{RoleEmployee, "tax", "preview"},
	{RoleEmployee, "leave", "create"},
	{RoleEmployee, "leave", "list"},
	{RoleEmployee, "leave", "allotments"},
	{RoleEmployee, "attendance", "mark"},
	{RoleEmployee, "attendance", "read"},
	{RoleEmployee, "rbac", "read"},
}

// IsValidRole reports whether role is one a user can sign up with.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}
