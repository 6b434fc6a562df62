package main

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/discover/internal/shared"
	tu "github.com/desertthunder/discover/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{HTTPClient: nil})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{ConfigPath: "/test/path/config.toml"})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result := output.String(); result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("writePlainln", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlainln("Next %s:", "steps"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result := output.String(); result != "\nNext steps:\n" {
			t.Errorf("expected surrounding newlines, got %q", result)
		}
	})

	t.Run("writeBytes", func(t *testing.T) {
		t.Run("writes all bytes", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeBytes([]byte("abc")); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "abc" {
				t.Errorf("expected 'abc', got %q", output.String())
			}
		})

		t.Run("handles short writer", func(t *testing.T) {
			limited := tu.NewLimitedWriter(0, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limited})

			if err := runner.writeBytes([]byte("abc")); err == nil {
				t.Fatal("expected error from limited writer")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) != 5 {
			t.Errorf("expected 5 commands, got %d", len(commands))
		}

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names[cmd.Name] = true
		}
		for _, name := range []string{"browse", "search", "tui", "serve", "init"} {
			if !names[name] {
				t.Errorf("expected %q to be registered", name)
			}
		}
	})

	t.Run("newSession", func(t *testing.T) {
		t.Run("rejects missing credentials", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Credentials.Spotify.ClientID = ""
			runner := NewRunner(RunnerOpts{Config: config, Logger: shared.NewLogger(&bytes.Buffer{})})

			_, err := runner.newSession()
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("wires every component", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{})})

			s, err := runner.newSession()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			defer s.close()

			if s.orchestrator == nil || s.provider == nil || s.state == nil {
				t.Fatal("expected orchestrator, provider and state to be set")
			}
		})
	})
}
