package session

// Record is the identity snapshot persisted for one cookie session.
type Record struct {
	SchemaVersion uint8

	SessionID    string
	Username     string
	RoleID       int
	RoleName     string
	FullName     string
	EmployeeCode string
	Email        string

	CreatedAt int64
	ExpiresAt int64
}
