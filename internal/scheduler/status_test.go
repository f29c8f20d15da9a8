package scheduler

import (
	"strings"
	"testing"
)

func TestStatusLineReplaces(t *testing.T) {
	var l StatusLine
	if l.Text() != "" {
		t.Error("fresh line should be empty")
	}

	l.Push("one")
	l.Push("two")
	if l.Text() != "two" {
		t.Errorf("text = %q, want two", l.Text())
	}
}

func TestFormatStatus(t *testing.T) {
	got := FormatStatus(50000, 17)
	if !strings.Contains(got, "5.000e+04") {
		t.Errorf("missing scientific count: %q", got)
	}
	if !strings.HasSuffix(got, "17") {
		t.Errorf("missing density: %q", got)
	}
}
