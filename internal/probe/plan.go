// file: internal/probe/plan.go

package probe

import (
	"fmt"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Plan is a YAML-defined set of API checks with an optional cron schedule
// used in monitor mode
type Plan struct {
	Schedule string  `yaml:"schedule"` // standard 5-field cron expression
	Checks   []Check `yaml:"checks"`
}

// Check is a single API probe: request a path and compare the status code
type Check struct {
	Name         string `yaml:"name"`
	Method       string `yaml:"method"`
	Path         string `yaml:"path"`
	ExpectStatus int    `yaml:"expectStatus"`
}

// LoadPlan reads and validates a check plan from a YAML file
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan file: %w", err)
	}

	setPlanDefaults(&plan)

	if err := validatePlan(&plan); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	return &plan, nil
}

// setPlanDefaults applies per-check defaults
func setPlanDefaults(plan *Plan) {
	for i := range plan.Checks {
		if plan.Checks[i].Method == "" {
			plan.Checks[i].Method = "GET"
		}
		if plan.Checks[i].ExpectStatus == 0 {
			plan.Checks[i].ExpectStatus = 200
		}
	}
}

// validatePlan ensures the plan is usable
func validatePlan(plan *Plan) error {
	if len(plan.Checks) == 0 {
		return fmt.Errorf("at least one check required")
	}

	if plan.Schedule != "" {
		if _, err := cron.ParseStandard(plan.Schedule); err != nil {
			return fmt.Errorf("invalid schedule %q: %w", plan.Schedule, err)
		}
	}

	seenNames := make(map[string]bool)
	for i, c := range plan.Checks {
		if c.Name == "" {
			return fmt.Errorf("check %d: name is required", i)
		}
		if seenNames[c.Name] {
			return fmt.Errorf("check %d: duplicate name '%s'", i, c.Name)
		}
		seenNames[c.Name] = true

		switch c.Method {
		case "GET", "HEAD", "POST", "PUT", "PATCH", "DELETE":
		default:
			return fmt.Errorf("check %s: invalid method '%s'", c.Name, c.Method)
		}

		if !strings.HasPrefix(c.Path, "/") {
			return fmt.Errorf("check %s: path must start with '/'", c.Name)
		}

		if c.ExpectStatus < 100 || c.ExpectStatus > 599 {
			return fmt.Errorf("check %s: invalid expectStatus %d", c.Name, c.ExpectStatus)
		}
	}

	return nil
}
