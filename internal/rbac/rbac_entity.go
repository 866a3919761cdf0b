package rbac

import (
	"time"

	"leavesync/internal/domain"
)

type RolePermission struct {
	ID        uint   `gorm:"primaryKey"`
	Role      string `gorm:"type:varchar(20);not null;uniqueIndex:uq_role_permission,priority:1"`
	Resource  string `gorm:"type:varchar(50);not null;uniqueIndex:uq_role_permission,priority:2"`
	Action    string `gorm:"type:varchar(50);not null;uniqueIndex:uq_role_permission,priority:3"`
	CreatedAt time.Time
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

// RoleHierarchy lists child → parent pairs: the child inherits every parent permission.
var RoleHierarchy = [][2]domain.Role{
	{domain.RoleManager, domain.RoleEmployee},
	{domain.RoleAdmin, domain.RoleManager},
}

func perm(role domain.Role, resource, action string) RolePermission {
	return RolePermission{Role: string(role), Resource: resource, Action: action}
}

// DefaultPermissions is seeded into role_permissions when the table is empty.
var DefaultPermissions = []RolePermission{
	perm(domain.RoleEmployee, "profile", "read"),
	perm(domain.RoleEmployee, "leave", "read"),
	perm(domain.RoleEmployee, "leave", "create"),
	perm(domain.RoleEmployee, "attendance", "read"),
	perm(domain.RoleEmployee, "attendance", "create"),
	perm(domain.RoleEmployee, "penalty", "read"),

	perm(domain.RoleManager, "leave", "read_all"),
	perm(domain.RoleManager, "leave", "approve"),
	perm(domain.RoleManager, "attendance", "read_all"),
	perm(domain.RoleManager, "penalty", "read_all"),
	perm(domain.RoleManager, "penalty", "create"),
	perm(domain.RoleManager, "user", "read"),

	perm(domain.RoleAdmin, "user", "create"),
	perm(domain.RoleAdmin, "penalty", "manage"),
	perm(domain.RoleAdmin, "dashboard", "read"),
	perm(domain.RoleAdmin, "rollover", "execute"),
}
