// Package cli wires the driftsync commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skovgaard/driftsync/internal/adapter"
	"github.com/skovgaard/driftsync/internal/adapter/gdrive"
	"github.com/skovgaard/driftsync/internal/adapter/local"
	"github.com/skovgaard/driftsync/internal/config"
	"github.com/skovgaard/driftsync/internal/domain"
	"github.com/skovgaard/driftsync/internal/fsaccess"
	"github.com/skovgaard/driftsync/internal/fspath"
	"github.com/skovgaard/driftsync/internal/logger"
	"github.com/skovgaard/driftsync/internal/state"
)

var configPath string

// NewRootCommand builds the driftsync command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "driftsync",
		Short:         "Path-safe file synchronization tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logger.Initialized() {
				return nil
			}
			// Logging follows the config file when one is present;
			// commands that need no config still run without one.
			cfg, err := config.Load(configPath)
			if errors.Is(err, domain.ErrConfigNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			return InitLogging(cfg)
		},
	}
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration")

	rootCmd.AddCommand(newCheckCommand(), newCompareCommand(), newStateCommand(),
		newAuthCommand(), newLsCommand())
	return rootCmd
}

// Execute runs the CLI.
func Execute() int {
	defer logger.Shutdown()

	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "driftsync: %v\n", err)
		return 1
	}
	return 0
}

func newCheckCommand() *cobra.Command {
	var fsName string
	var folder bool

	cmd := &cobra.Command{
		Use:   "check <name>...",
		Short: "Validate candidate names for a target filesystem",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fsType := fspath.ParseFilesystemType(fsName)
			kind := fspath.NodeFile
			if folder {
				kind = fspath.NodeFolder
			}

			out := cmd.OutOrStdout()
			failed := false
			for _, name := range args {
				escaped := fspath.FromRelativeName(name, fsType).ToPath(false)
				err := fsaccess.ValidateName(name, kind, fsType)
				switch {
				case err == nil:
					fmt.Fprintf(out, "%s\tok\tstored as %q\n", name, escaped)
				default:
					failed = true
					fmt.Fprintf(out, "%s\tinvalid\t%v\n", name, err)
				}
			}
			if failed {
				return fmt.Errorf("one or more names are invalid")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&fsName, "filesystem", "f", "", "target filesystem (fat, exfat, ntfs, hfs, ext)")
	cmd.Flags().BoolVar(&folder, "folder", false, "validate as a folder name")
	return cmd
}

func newCompareCommand() *cobra.Command {
	var caseInsensitive bool
	var escaped bool

	cmd := &cobra.Command{
		Use:   "compare <path> <path>",
		Short: "Order two paths under a chosen case mode",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var lhs, rhs fspath.Term
			if escaped {
				lhs = fspath.Escaped(fspath.FromRelativePath(args[0]))
				rhs = fspath.Escaped(fspath.FromRelativePath(args[1]))
			} else {
				lhs = fspath.Decoded(args[0])
				rhs = fspath.Decoded(args[1])
			}

			order := fspath.Compare(lhs, rhs, caseInsensitive)
			var verdict string
			switch {
			case order < 0:
				verdict = "<"
			case order > 0:
				verdict = ">"
			default:
				verdict = "="
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%q %s %q\n", args[0], verdict, args[1])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&caseInsensitive, "ignore-case", "i", false, "compare case-insensitively")
	cmd.Flags().BoolVar(&escaped, "escaped", false, "treat operands as escaped local paths")
	return cmd
}

func newStateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect endpoint state databases",
	}
	cmd.AddCommand(newStateProbeCommand(), newStateListCommand())
	return cmd
}

func newStateProbeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <endpoint>",
		Short: "Report which database generation an endpoint has on disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if _, err := cfg.GetEndpoint(args[0]); err != nil {
				return fmt.Errorf("endpoint %q: %w", args[0], err)
			}

			root := fspath.FromAbsolutePath(cfg.DataDir)
			if !state.Probe(root, args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tno database\n", args[0])
				return nil
			}
			db, err := state.Open(root, args[0])
			if err != nil {
				return err
			}
			defer db.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "%s\tversion %d\n", args[0], db.CurrentVersion)
			return nil
		},
	}
}

func newStateListCommand() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "list <endpoint>",
		Short: "List tracked nodes for an endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			endpoint, err := cfg.GetEndpoint(args[0])
			if err != nil {
				return fmt.Errorf("endpoint %q: %w", args[0], err)
			}

			db, err := state.Open(fspath.FromAbsolutePath(cfg.DataDir), endpoint.Name)
			if err != nil {
				return err
			}
			defer db.Close()

			records, err := db.Children(fspath.RemotePath(prefix), endpointCaseInsensitive(endpoint))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, rec := range records {
				fmt.Fprintf(out, "%s\t%s\t%d\n", rec.RemotePath, rec.LocalName, rec.Size)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&prefix, "under", "u", "/", "list children of this remote path")
	return cmd
}

func newLsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls <endpoint> [path]",
		Short: "List entries of an endpoint",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			endpoint, err := cfg.GetEndpoint(args[0])
			if err != nil {
				return fmt.Errorf("endpoint %q: %w", args[0], err)
			}
			transport, err := cfg.GetTransport(endpoint.Transport)
			if err != nil {
				return fmt.Errorf("transport %q: %w", endpoint.Transport, err)
			}

			a, err := openAdapter(cmd.Context(), cfg, *transport, *endpoint)
			if err != nil {
				return err
			}
			defer a.Close()

			path := fspath.RemotePath("/")
			if len(args) == 2 {
				path = fspath.RemotePath(args[1])
			}
			entries, err := a.List(cmd.Context(), path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				marker := ""
				if e.IsDir() {
					marker = "/"
				}
				fmt.Fprintf(out, "%s%s\t%d\n", e.Path, marker, e.Size)
			}
			return nil
		},
	}
	return cmd
}

func openAdapter(ctx context.Context, cfg *config.Config, transport domain.Transport, endpoint domain.Endpoint) (adapter.Adapter, error) {
	factories := []adapter.Factory{
		local.Factory{},
		gdrive.Factory{DataDir: cfg.DataDir},
	}
	for _, f := range factories {
		if f.Supports(transport.Type) {
			return f.Create(ctx, transport, endpoint)
		}
	}
	return nil, fmt.Errorf("%w: no adapter for transport type %s",
		domain.ErrTransportNotFound, transport.Type)
}

func newAuthCommand() *cobra.Command {
	var clientID, clientSecret, code string

	cmd := &cobra.Command{
		Use:   "auth <transport>",
		Short: "Authorize a Google Drive transport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			transport, err := cfg.GetTransport(args[0])
			if err != nil {
				return fmt.Errorf("transport %q: %w", args[0], err)
			}
			if transport.Type != domain.TransportGDrive {
				return fmt.Errorf("transport %q is not a gdrive transport", args[0])
			}

			auth := gdrive.NewAuthenticator(clientID, clientSecret, cfg.DataDir, transport.Name)
			if code == "" {
				fmt.Fprintf(cmd.OutOrStdout(),
					"Visit the URL below, then rerun with --code:\n%s\n", auth.AuthURL())
				return nil
			}
			if err := auth.Exchange(cmd.Context(), code); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "token stored")
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth client id")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth client secret")
	cmd.Flags().StringVar(&code, "code", "", "authorization code from the consent page")
	return cmd
}

func endpointCaseInsensitive(e *domain.Endpoint) bool {
	if e.CaseInsensitive != nil {
		return *e.CaseInsensitive
	}
	return fspath.Native().CaseInsensitive()
}

// InitLogging configures the global logger from the loaded settings.
func InitLogging(cfg *config.Config) error {
	outputs := []logger.OutputConfig{{Type: logger.OutputStderr}}
	fileCfg := logger.FileConfig{}
	if cfg.Log.File != "" {
		outputs = append(outputs, logger.OutputConfig{Type: logger.OutputFile})
		fileCfg = logger.FileConfig{
			Enabled:    true,
			Path:       config.ExpandPath(cfg.Log.File),
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxAgeDays: cfg.Log.MaxAgeDays,
			MaxBackups: cfg.Log.MaxBackups,
			Compress:   cfg.Log.Compress,
		}
	}
	return logger.Init(logger.Config{
		Level:   logger.ParseLevel(cfg.Log.Level),
		Format:  logger.ParseFormat(cfg.Log.Format),
		Outputs: outputs,
		File:    fileCfg,
	})
}
