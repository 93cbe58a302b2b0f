package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/repository"
)

func newBackupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export, import and roll back your data",
	}

	cmd.AddCommand(
		newBackupExportCmd(app),
		newBackupImportCmd(app),
		newBackupRollbackCmd(app),
		newBackupSnapshotsCmd(app),
	)

	return cmd
}

func newBackupExportCmd(app *App) *cobra.Command {
	var dir string
	var stdout bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON backup file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			if stdout {
				return app.Backup.Export(ctx, cmd.OutOrStdout())
			}
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("finding working directory: %w", err)
				}
				dir = wd
			}
			path, err := app.Backup.ExportToDir(ctx, dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported backup to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to write the backup into (defaults to the current directory)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Write the backup to standard output")

	return cmd
}

func newBackupImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace all data with a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Backup.ImportFile(cmdContext(cmd), args[0])
			if err != nil {
				app.logger().Error("backup import failed", "path", args[0], "error", err)
				return errors.New(res.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render(res.Message))
			return nil
		},
	}
}

func newBackupRollbackCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rollback",
		Short: "Restore the data as it was before the last import",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Backup.Rollback(cmdContext(cmd))
			if errors.Is(err, repository.ErrNotFound) {
				return errors.New("nothing to roll back: no import snapshot found")
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored data from before the import on %s\n", snap.CreatedAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
}

func newBackupSnapshotsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshots",
		Short: "List the pre-import snapshots available for rollback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snaps, err := app.Backup.Snapshots(cmdContext(cmd))
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No snapshots.")
				return nil
			}
			rows := make([][]string, 0, len(snaps))
			for _, s := range snaps {
				rows = append(rows, []string{
					fmt.Sprint(s.ID),
					s.CreatedAt.Local().Format("2006-01-02 15:04"),
					s.Reason,
					fmt.Sprintf("%d bytes", len(s.Value)),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "TAKEN", "REASON", "SIZE"}, rows))
			return nil
		},
	}
}
