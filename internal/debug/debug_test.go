package debug

import "testing"

func TestSetVerbose(t *testing.T) {
	orig := verboseMode
	t.Cleanup(func() { verboseMode = orig })

	SetVerbose(true)
	if !Enabled() {
		t.Error("expected Enabled() after SetVerbose(true)")
	}
	SetVerbose(false)
	if !enabled && Enabled() {
		t.Error("expected Enabled() false after SetVerbose(false)")
	}
}
