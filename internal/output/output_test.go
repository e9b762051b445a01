package output

import (
	"bytes"
	"testing"
)

func TestPrinterNoColor(t *testing.T) {
	var out, errOut bytes.Buffer
	p := &Printer{Out: &out, Err: &errOut, NoColor: true}

	p.Info("Building project with %s configuration", "debug")
	p.Error("Build failed")

	if got, want := out.String(), "Building project with debug configuration\n"; got != want {
		t.Errorf("Out = %q, want %q", got, want)
	}
	if got, want := errOut.String(), "Build failed\n"; got != want {
		t.Errorf("Err = %q, want %q", got, want)
	}
}

func TestNilPrinter(t *testing.T) {
	var p *Printer
	p.Info("ignored")
}
