package commands

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/config"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/printer"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "ffadmin config validate [options]",
				Description: "Validates the configuration file, checking the backend URL, theme, keybindings, and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationIssue is a single failed check.
type validationIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	issues := collectIssues(cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath))
	warnings := cmd.flags.Config.Warnings()

	if cmd.format == "json" {
		out := struct {
			Valid    bool                       `json:"valid"`
			Errors   []validationIssue          `json:"errors,omitempty"`
			Warnings []config.ValidationWarning `json:"warnings,omitempty"`
		}{
			Valid:    len(issues) == 0,
			Errors:   issues,
			Warnings: warnings,
		}

		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
		if len(issues) > 0 {
			return cli.Exit("", 1)
		}
		return nil
	}

	p := printer.Ctx(ctx)

	for _, w := range warnings {
		p.Warnf("%s: %s", w.Category, w.Message)
		if w.Item != "" {
			p.Printf("  Item: %s", w.Item)
		}
	}

	for _, issue := range issues {
		if issue.Field != "" {
			p.Errorf("%s: %s", issue.Field, issue.Message)
		} else {
			p.Errorf("%s", issue.Message)
		}
	}

	p.Printf("")
	if len(issues) == 0 {
		p.Successf("Configuration is valid")
		return nil
	}

	p.Errorf("%d error(s) found", len(issues))
	return cli.Exit("", 1)
}

func collectIssues(err error) []validationIssue {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationIssue{{Message: err.Error()}}
	}

	issues := make([]validationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues
}
