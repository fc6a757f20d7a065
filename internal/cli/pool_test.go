package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jmylchreest/polycue/internal/colour"
)

func TestPoolSwatchesOnTerminal(t *testing.T) {
	orig := stdoutIsTerminal
	defer func() { stdoutIsTerminal = orig }()
	stdoutIsTerminal = func() bool { return true }

	var out bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"pool"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("pool error = %v", err)
	}

	pool := colour.DefaultPool()
	first := pool.Colour(0)
	want := colour.ColourPreviewWithText(first, fmt.Sprintf("%.0f", pool.Lab(0).L), 6)

	if !strings.HasPrefix(out.String(), "Swatch") {
		t.Errorf("pool output should start with the Swatch column: %q", out.String())
	}
	if !strings.Contains(out.String(), want) {
		t.Errorf("pool output missing labelled swatch for %s", first.Hex())
	}
}
