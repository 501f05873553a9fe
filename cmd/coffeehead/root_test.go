package coffeehead

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestRootHelp(t *testing.T) {
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected help output")
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coffeehead.db")
	for i := 0; i < 2; i++ {
		buf := &bytes.Buffer{}
		rootCmd.SetOut(buf)
		rootCmd.SetErr(buf)
		rootCmd.SetArgs([]string{"--db", path, "init"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("init run %d failed: %v", i+1, err)
		}
	}
}

func TestMenuBrandsKnownAndUnknown(t *testing.T) {
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"menu", "brands", "luckin"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("menu brands luckin: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Americano")) {
		t.Fatalf("expected best sellers in output, got %q", buf.String())
	}

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"menu", "brands", "nonexistent"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected error for unknown brand")
	}
}

func TestStatusOnEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coffeehead.db")
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--db", path, "status"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("status on empty db: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Ready to Sleep")) {
		t.Fatalf("expected ready-to-sleep on an empty database, got %q", buf.String())
	}
}
