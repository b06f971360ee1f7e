// config.go implements the "canvas-mcp config" command for configuration management.
//
// Separated from extension.go to isolate config-specific logic including
// the local vs global config precedence rules.
//
// Design: Config follows a cascade model similar to git: local config
// (.canvas-mcp/config.yaml) takes precedence over global
// (~/.canvas-mcp/config.yaml). The --local flag forces use of local config
// even if it doesn't exist yet. A non-empty CANVAS_* environment variable
// overrides both. The API token is always displayed masked.

package core

import (
	"fmt"
	"os"

	"github.com/jpl-au/canvas-mcp/cmd"
	"github.com/jpl-au/canvas-mcp/extension"
	"github.com/jpl-au/canvas-mcp/internal/config"
	"github.com/jpl-au/canvas-mcp/internal/log"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  canvas-mcp config                                    # show config
  canvas-mcp config canvas.host                        # show one value
  canvas-mcp config canvas.host school.instructure.com # set a value

Configuration locations:
  Global: ~/.canvas-mcp/config.yaml
  Local:  .canvas-mcp/config.yaml

Uses local config if it exists, otherwise global.
Writes go to the same place reads come from.
Use --local to use local config instead.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.canvas-mcp/config.yaml)")
	return c
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)

	var cfg *config.Config
	var err error
	if forceLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		values := make(map[string]string, len(config.ValidKeys()))
		for _, k := range config.ValidKeys() {
			values[k], _ = cfg.Masked(k)
		}
		log.Event("cli:config", "list").Detail("scope", scopeName).Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(values)
		}
		for _, k := range config.ValidKeys() {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, values[k])
		}

	case 1:
		v, err := cfg.Masked(args[0])
		log.Event("cli:config", "get").Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("cli:config", "set").Detail("key", args[0]).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		// Value intentionally not logged: canvas.token is a credential
		log.Event("cli:config", "set").Detail("key", args[0]).Detail("scope", scopeName).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}

		shown, _ := cfg.MaskedFile(args[0])
		override := cfg.EnvOverride(args[0])
		if cmd.JSON() {
			out := map[string]string{"key": args[0], "value": shown, "scope": scopeName, "path": cfg.Path()}
			if override != "" {
				out["overridden_by"] = override
			}
			return cmd.PrintJSON(out)
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], shown, scopeName)
		if override != "" {
			fmt.Fprintf(os.Stderr, "note: %s is set and overrides this value\n", override)
		}
	}
	return nil
}
