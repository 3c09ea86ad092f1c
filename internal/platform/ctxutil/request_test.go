package ctxutil

import (
	"context"
	"testing"
)

func TestCanSee(t *testing.T) {
	cases := []struct {
		name string
		id   *Identity
		emp  string
		want bool
	}{
		{"no identity", nil, "E1", false},
		{"hr admin", &Identity{Role: RoleHRAdmin}, "E1", true},
		{"manager", &Identity{Role: RoleManager, EmployeeID: "M1"}, "E1", true},
		{"employee self", &Identity{Role: RoleEmployee, EmployeeID: "E1"}, "E1", true},
		{"employee other", &Identity{Role: RoleEmployee, EmployeeID: "E1"}, "E2", false},
		{"employee unbound", &Identity{Role: RoleEmployee}, "", false},
	}
	for _, tc := range cases {
		if got := tc.id.CanSee(tc.emp); got != tc.want {
			t.Fatalf("%s: CanSee=%v want %v", tc.name, got, tc.want)
		}
	}
}

func TestLogFields(t *testing.T) {
	if kv := LogFields(context.Background()); len(kv) != 0 {
		t.Fatalf("expected no fields, got %v", kv)
	}
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t-1", RequestID: "r-1"})
	ctx = WithIdentity(ctx, &Identity{Subject: "u-9", Role: RoleManager})
	kv := LogFields(ctx)
	want := []interface{}{"trace_id", "t-1", "request_id", "r-1", "role", RoleManager, "subject", "u-9"}
	if len(kv) != len(want) {
		t.Fatalf("fields=%v", kv)
	}
	for i := range want {
		if kv[i] != want[i] {
			t.Fatalf("fields[%d]=%v want %v", i, kv[i], want[i])
		}
	}
}
