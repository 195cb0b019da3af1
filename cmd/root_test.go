package cmd

import "testing"

func TestRootCommandRegistersSubcommands(t *testing.T) {
	want := map[string]bool{
		"ideas":    false,
		"pipeline": false,
		"validate": false,
		"serve":    false,
		"status":   false,
	}
	for _, sub := range rootCmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestIdeasCommandRequiresPrompt(t *testing.T) {
	if err := ideasCmd.Args(ideasCmd, nil); err == nil {
		t.Fatal("expected error for missing prompt")
	}
	if err := ideasCmd.Args(ideasCmd, []string{"an", "app"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
