package ctxutil

import "context"

const (
	RoleHRAdmin  = "HR_ADMIN"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
)

type (
	identityKey  struct{}
	traceDataKey struct{}
)

// Identity is the authenticated caller as read from the bearer token.
type Identity struct {
	Subject    string
	Role       string
	EmployeeID string
}

func (i *Identity) HasRole(roles ...string) bool {
	if i == nil {
		return false
	}
	for _, r := range roles {
		if r == i.Role {
			return true
		}
	}
	return false
}

// CanSee reports whether the caller may read data about employeeID.
// Employees are limited to their own records.
func (i *Identity) CanSee(employeeID string) bool {
	if i == nil {
		return false
	}
	if i.Role != RoleEmployee {
		return true
	}
	return i.EmployeeID != "" && i.EmployeeID == employeeID
}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func GetIdentity(ctx context.Context) *Identity {
	if id, ok := ctx.Value(identityKey{}).(*Identity); ok {
		return id
	}
	return nil
}

// TraceData correlates one API request across logs, spans and response headers.
type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// LogFields returns the request's trace ids and caller as logger key/value pairs.
// Absent values are omitted.
func LogFields(ctx context.Context) []interface{} {
	var kv []interface{}
	if td := GetTraceData(ctx); td != nil {
		if td.TraceID != "" {
			kv = append(kv, "trace_id", td.TraceID)
		}
		if td.RequestID != "" {
			kv = append(kv, "request_id", td.RequestID)
		}
	}
	if id := GetIdentity(ctx); id != nil {
		kv = append(kv, "role", id.Role)
		if id.Subject != "" {
			kv = append(kv, "subject", id.Subject)
		}
	}
	return kv
}
