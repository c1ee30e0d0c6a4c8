package auth

// Roles assignable to a tenant member
const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleOperator = "OPERATOR"
)

// Permission names follow the entity:action convention
type Permission string

const (
	PermProductsWrite    Permission = "products:write"
	PermProductsDelete   Permission = "products:delete"
	PermCategoriesWrite  Permission = "categories:write"
	PermCategoriesDelete Permission = "categories:delete"
	PermVariantsWrite    Permission = "variants:write"
	PermVariantsDelete   Permission = "variants:delete"
	PermMovementsWrite   Permission = "movements:write"
	PermReportsExport    Permission = "reports:export"
	PermUsersManage      Permission = "users:manage"
	PermBillingManage    Permission = "billing:manage"
)

var rolePermissions = map[string][]Permission{
	RoleAdmin: {
		PermProductsWrite, PermProductsDelete,
		PermCategoriesWrite, PermCategoriesDelete,
		PermVariantsWrite, PermVariantsDelete,
		PermMovementsWrite, PermReportsExport,
		PermUsersManage, PermBillingManage,
	},
	RoleManager: {
		PermProductsWrite, PermProductsDelete,
		PermCategoriesWrite, PermCategoriesDelete,
		PermVariantsWrite, PermVariantsDelete,
		PermMovementsWrite, PermReportsExport,
	},
	RoleOperator: {
		PermMovementsWrite,
	},
}

// HasPermission reports whether a role grants the permission.
// Unknown roles degrade to OPERATOR, the most restrictive set.
func HasPermission(role string, permission Permission) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		perms = rolePermissions[RoleOperator]
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}
