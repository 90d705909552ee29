package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	if s := String(); !strings.Contains(s, "version: v9.9.9") {
		t.Errorf("String() = %q, missing version", s)
	}
	if s := Template(); !strings.HasPrefix(s, "{{.Name}} v9.9.9") {
		t.Errorf("Template() = %q", s)
	}
}
