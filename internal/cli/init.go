// init.go implements the "mockround init" command.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mockround/mockround/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .mockround/config.yaml in the current directory",
	Long: `Initialize the .mockround/ directory with a configuration file.
A user ID is generated unless --user is given.`,
	RunE: runInit,
}

var (
	initUser  string
	initForce bool
)

func init() {
	initCmd.Flags().StringVar(&initUser, "user", "", "User ID to interview as (default: generated)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration without asking")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := projectDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}
	out := cmd.OutOrStdout()

	if _, err := os.Stat(config.Path(dir)); err == nil && !initForce {
		fmt.Fprintln(out, "Warning: .mockround/config.yaml already exists.")
		fmt.Fprint(out, "Reinitialize? [y/N]: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	cfg.UserID = strings.TrimSpace(initUser)
	if cfg.UserID == "" {
		cfg.UserID = uuid.NewString()
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := config.WriteConfig(dir, cfg); err != nil {
		return err
	}
	if err := ensureGitignore(dir); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to set up .mockround/.gitignore: %v\n", err)
	}

	fmt.Fprintf(out, "Wrote %s\n", config.Path(dir))
	fmt.Fprintf(out, "User: %s\n", cfg.UserID)
	fmt.Fprintf(out, "Question service: %s\n", cfg.API.BaseURL)
	return nil
}

// ensureGitignore keeps local state out of version control.
func ensureGitignore(dir string) error {
	path := filepath.Join(dir, ".mockround", ".gitignore")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte("*.db\n*.db-*\nlog.jsonl\ndebug.log\n"), 0644)
}
