package gateway

import (
	"github.com/AdolfoCB/almapac-gateway/jwt"
	"github.com/AdolfoCB/almapac-gateway/session"
)

// Identity is the resolved caller of one request.
type Identity struct {
	Username     string `json:"username"`
	RoleID       int    `json:"roleId"`
	RoleName     string `json:"role"`
	FullName     string `json:"fullName,omitempty"`
	EmployeeCode string `json:"employeeCode,omitempty"`
	Email        string `json:"email,omitempty"`
}

// Complete reports whether id carries a username and a positive role id. The resolver
// never returns an incomplete identity.
func (id Identity) Complete() bool {
	return id.Username != "" && id.RoleID > 0
}

// CredentialSource names the transport an identity was resolved from.
type CredentialSource uint8

const (
	SourceNone CredentialSource = iota
	SourceCookie
	SourceBearer
)

func (s CredentialSource) String() string {
	switch s {
	case SourceCookie:
		return "cookie"
	case SourceBearer:
		return "bearer"
	default:
		return "none"
	}
}

// Precedence is a credential resolution order.
type Precedence uint8

// PrecedenceCookieFirst tries the session cookie, then the Bearer header. It is the only
// policy and is not configurable.
const PrecedenceCookieFirst Precedence = 0

func (p Precedence) order() []CredentialSource {
	switch p {
	case PrecedenceCookieFirst:
		return []CredentialSource{SourceCookie, SourceBearer}
	default:
		return nil
	}
}

func (p Precedence) String() string {
	if p == PrecedenceCookieFirst {
		return "cookie-first"
	}
	return "unknown"
}

func identityFromRecord(rec *session.Record) Identity {
	return Identity{
		Username:     rec.Username,
		RoleID:       rec.RoleID,
		RoleName:     rec.RoleName,
		FullName:     rec.FullName,
		EmployeeCode: rec.EmployeeCode,
		Email:        rec.Email,
	}
}

func (id Identity) record() *session.Record {
	return &session.Record{
		Username:     id.Username,
		RoleID:       id.RoleID,
		RoleName:     id.RoleName,
		FullName:     id.FullName,
		EmployeeCode: id.EmployeeCode,
		Email:        id.Email,
	}
}

func identityFromClaims(c *jwt.IdentityClaims) Identity {
	return Identity{
		Username:     c.Username,
		RoleID:       c.RoleID,
		RoleName:     c.Role,
		FullName:     c.FullName,
		EmployeeCode: c.EmployeeCode,
		Email:        c.Email,
	}
}

// Claims converts id into Bearer token claims.
func (id Identity) Claims() jwt.IdentityClaims {
	return jwt.IdentityClaims{
		Username:     id.Username,
		RoleID:       id.RoleID,
		Role:         id.RoleName,
		FullName:     id.FullName,
		EmployeeCode: id.EmployeeCode,
		Email:        id.Email,
	}
}
