// file: internal/probe/plan_test.go

package probe

import (
	"os"
	"path/filepath"
	"testing"
)

func writePlanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write plan file: %v", err)
	}
	return path
}

func TestLoadPlan(t *testing.T) {
	path := writePlanFile(t, `
schedule: "*/5 * * * *"
checks:
  - name: authenticated-user
    path: /user
  - name: rate-limit
    method: HEAD
    path: /rate_limit
    expectStatus: 200
`)

	plan, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan() unexpected error: %v", err)
	}

	if plan.Schedule != "*/5 * * * *" {
		t.Errorf("Schedule = %q", plan.Schedule)
	}
	if len(plan.Checks) != 2 {
		t.Fatalf("len(Checks) = %d, want 2", len(plan.Checks))
	}

	// Defaults applied to the first check
	if plan.Checks[0].Method != "GET" {
		t.Errorf("Checks[0].Method = %q, want GET", plan.Checks[0].Method)
	}
	if plan.Checks[0].ExpectStatus != 200 {
		t.Errorf("Checks[0].ExpectStatus = %d, want 200", plan.Checks[0].ExpectStatus)
	}
	if plan.Checks[1].Method != "HEAD" {
		t.Errorf("Checks[1].Method = %q, want HEAD", plan.Checks[1].Method)
	}
}

func TestLoadPlanValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "no checks",
			content: `schedule: "* * * * *"`,
		},
		{
			name: "missing name",
			content: `
checks:
  - path: /user
`,
		},
		{
			name: "duplicate name",
			content: `
checks:
  - name: user
    path: /user
  - name: user
    path: /users/octocat
`,
		},
		{
			name: "invalid method",
			content: `
checks:
  - name: user
    method: FETCH
    path: /user
`,
		},
		{
			name: "relative path",
			content: `
checks:
  - name: user
    path: user
`,
		},
		{
			name: "implausible status",
			content: `
checks:
  - name: user
    path: /user
    expectStatus: 999
`,
		},
		{
			name: "invalid cron schedule",
			content: `
schedule: "every five minutes"
checks:
  - name: user
    path: /user
`,
		},
		{
			name:    "unparseable yaml",
			content: "checks: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePlanFile(t, tt.content)
			if _, err := LoadPlan(path); err == nil {
				t.Error("LoadPlan() expected error, got nil")
			}
		})
	}
}

func TestLoadPlanMissingFile(t *testing.T) {
	if _, err := LoadPlan(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadPlan() expected error for missing file, got nil")
	}
}

func TestLoadPlanWithoutSchedule(t *testing.T) {
	// Schedule is optional: one-shot runs do not need it
	path := writePlanFile(t, `
checks:
  - name: user
    path: /user
`)

	plan, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan() unexpected error: %v", err)
	}
	if plan.Schedule != "" {
		t.Errorf("Schedule = %q, want empty", plan.Schedule)
	}
}
