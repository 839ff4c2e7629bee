package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestSeedCommand(t *testing.T) {
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "seed.db"))
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("JWT_SECRET", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"seed", "--fake", "2"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out.String(), "meals created: 14") {
		t.Errorf("output = %q", out.String())
	}
}

func TestServeRequiresSecret(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("JWT_SECRET", "")
	rootCmd.SetArgs([]string{"serve"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "jwt_secret") {
		t.Fatalf("serve error = %v, want missing secret", err)
	}
}
