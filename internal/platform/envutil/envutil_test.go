package envutil

import (
	"testing"
	"time"
)

func TestIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("TA_TEST_INT", "abc")
	if got := Int("TA_TEST_INT", 7); got != 7 {
		t.Fatalf("Int=%d want 7", got)
	}
	t.Setenv("TA_TEST_INT", " 42 ")
	if got := Int("TA_TEST_INT", 7); got != 42 {
		t.Fatalf("Int=%d want 42", got)
	}
}

func TestSecondsAndList(t *testing.T) {
	t.Setenv("TA_TEST_SECS", "0")
	if got := Seconds("TA_TEST_SECS", time.Minute); got != time.Minute {
		t.Fatalf("Seconds=%s want 1m", got)
	}
	t.Setenv("TA_TEST_LIST", "a, ,b,")
	got := List("TA_TEST_LIST", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List=%v", got)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("TA_TEST_BOOL", "off")
	if Bool("TA_TEST_BOOL", true) {
		t.Fatalf("Bool(off) should be false")
	}
	t.Setenv("TA_TEST_BOOL", "maybe")
	if !Bool("TA_TEST_BOOL", true) {
		t.Fatalf("Bool(maybe) should use default")
	}
}
