package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev" // semantic version (e.g., "v1.2.3")
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version.
// It is typically called by main with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// app is the state shared by all commands of one invocation.
type app struct {
	cfg Config
}

// Execute runs the graphcodec CLI with the process arguments.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stderr).ExecuteContext(ctx)
}

// newRootCmd builds the command tree. Logs go to logOut; command output goes
// to the command's configured output (stdout by default).
func newRootCmd(logOut io.Writer) *cobra.Command {
	var (
		verbose    bool
		configPath string
	)
	a := &app{cfg: defaultConfig()}

	root := &cobra.Command{
		Use:          "graphcodec",
		Short:        "graphcodec converts computation graphs to and from portable documents",
		Long:         `graphcodec inspects, converts, evaluates and renders computation graph documents. Several documents can be given in order; later documents may refer to tensors of earlier ones.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			explicit := cmd.Flags().Changed("config")
			cfg, unknown, err := loadConfig(configPath, explicit)
			if err != nil {
				return err
			}
			a.cfg = cfg

			level, err := charmlog.ParseLevel(cfg.Log.Level)
			if err != nil {
				return err
			}
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(logOut, level)
			for _, key := range unknown {
				logger.Warn("unknown config key", "key", key, "file", configPath)
			}
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("graphcodec %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigFile, "configuration file")

	root.AddCommand(a.newInspectCmd())
	root.AddCommand(a.newConvertCmd())
	root.AddCommand(a.newEvalCmd())
	root.AddCommand(a.newVarsCmd())
	root.AddCommand(a.newRenderCmd())

	return root
}
