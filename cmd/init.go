package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	huh "charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/grove/internal/config"
	"github.com/zhubert/grove/internal/git"
	"github.com/zhubert/grove/internal/issues"
	"github.com/zhubert/grove/internal/logger"
	"github.com/zhubert/grove/internal/prompt"
	"github.com/zhubert/grove/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up grove for you and this repository",
	Long: `Opens a form for the user config (~/.grove/config.json): theme, branch
prefix, generator command, notifications and prompt timing. Inside a repository
it can also link an Asana project (needs ASANA_PAT) and write a starter
.grove.toml.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// initAnswers holds the form values; numbers stay strings for huh inputs.
type initAnswers struct {
	Theme         string
	BranchPrefix  string
	AICommand     string
	AIModel       string
	Notifications bool
	EscapeTimeout string
	MenuHeight    string
	AsanaProject  string
	WriteRepo     bool
}

func answersFrom(cfg *config.Config, repoPath string) initAnswers {
	theme := cfg.GetTheme()
	if theme == "" {
		theme = string(ui.DefaultTheme)
	}
	return initAnswers{
		Theme:         theme,
		BranchPrefix:  cfg.GetDefaultBranchPrefix(),
		AICommand:     cfg.GetAICommand(),
		AIModel:       cfg.GetAIModel(),
		Notifications: cfg.GetNotificationsEnabled(),
		EscapeTimeout: strconv.Itoa(int(cfg.GetEscapeTimeout().Milliseconds())),
		MenuHeight:    strconv.Itoa(cfg.GetMenuHeight()),
		AsanaProject:  cfg.GetAsanaProject(repoPath),
	}
}

func validateInt(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil || n < lo || n > hi {
			return fmt.Errorf("enter a number from %d to %d", lo, hi)
		}
		return nil
	}
}

// initForm builds the setup form. The repository group only appears when
// repoPath is set.
func initForm(a *initAnswers, repoPath string, projects []issues.AsanaProject) *huh.Form {
	themeOptions := make([]huh.Option[string], 0, len(ui.BuiltinThemes))
	for _, name := range ui.ThemeNames() {
		themeOptions = append(themeOptions, huh.NewOption(ui.BuiltinThemes[name].Name, string(name)))
	}

	general := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&a.Theme),
		huh.NewInput().
			Title("Default branch prefix").
			Description("Applied to all new branches").
			Placeholder("e.g., zhubert/").
			CharLimit(40).
			Validate(config.ValidateBranchPrefix).
			Value(&a.BranchPrefix),
		huh.NewInput().
			Title("Generator command").
			Description("CLI used to draft branch names, commits and PRs").
			Placeholder(config.DefaultAICommand).
			Value(&a.AICommand),
		huh.NewInput().
			Title("Model").
			Description("Passed as --model; leave empty for the CLI default").
			Value(&a.AIModel),
		huh.NewConfirm().
			Title("Desktop notification when a PR opens?").
			Value(&a.Notifications),
	)

	timing := huh.NewGroup(
		huh.NewInput().
			Title("Escape timeout (ms)").
			Description("How long a lone Esc waits for the rest of a key sequence").
			Validate(validateInt(5, 1000)).
			Value(&a.EscapeTimeout),
		huh.NewInput().
			Title("Menu height").
			Description("Items shown at once before a menu scrolls").
			Validate(validateInt(3, 50)).
			Value(&a.MenuHeight),
	)

	var repoFields []huh.Field
	if len(projects) > 0 {
		options := []huh.Option[string]{huh.NewOption("None", "")}
		for _, p := range projects {
			options = append(options, huh.NewOption(p.Name, p.GID))
		}
		repoFields = append(repoFields, huh.NewSelect[string]().
			Title("Asana project").
			Description("Links this repo to an Asana project for task import").
			Options(options...).
			Height(10).
			Filtering(true).
			Value(&a.AsanaProject))
	}
	repoFields = append(repoFields, huh.NewConfirm().
		Title("Write " + config.RepoFileName + "?").
		Description("Repository settings shared with your team").
		Value(&a.WriteRepo))
	repo := huh.NewGroup(repoFields...).WithHideFunc(func() bool { return repoPath == "" })

	return huh.NewForm(general, timing, repo).
		WithTheme(ui.FormTheme()).
		WithShowHelp(true)
}

// applyInit stores the answers in cfg and, when asked, writes a starter
// repo config that does not exist yet.
func applyInit(cfg *config.Config, a initAnswers, repoPath string) error {
	cfg.SetTheme(a.Theme)
	cfg.SetDefaultBranchPrefix(a.BranchPrefix)
	if a.AICommand == config.DefaultAICommand {
		a.AICommand = ""
	}
	cfg.SetAICommand(a.AICommand)
	cfg.SetAIModel(a.AIModel)
	cfg.SetNotificationsEnabled(a.Notifications)
	if ms, err := strconv.Atoi(a.EscapeTimeout); err == nil {
		cfg.SetEscapeTimeoutMS(ms)
	}
	if n, err := strconv.Atoi(a.MenuHeight); err == nil {
		cfg.SetMenuHeight(n)
	}
	if repoPath != "" {
		cfg.SetAsanaProject(repoPath, a.AsanaProject)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	if repoPath == "" || !a.WriteRepo {
		return nil
	}
	if _, err := os.Stat(filepath.Join(repoPath, config.RepoFileName)); err == nil {
		return nil
	}
	existing, err := config.LoadRepo(repoPath)
	if err != nil {
		return err
	}
	if a.AsanaProject != "" {
		existing.Tasks.Source = config.TaskSourceAsana
	}
	return config.SaveRepo(repoPath, existing)
}

func runInit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := logger.ComponentLogger("cmd")

	cfg, err := loadUserConfig()
	if err != nil {
		return err
	}

	repoPath := ""
	if wd, err := os.Getwd(); err == nil {
		if root, err := git.NewGitService().RepoRoot(ctx, wd); err == nil {
			repoPath = root
		}
	}

	var projects []issues.AsanaProject
	if repoPath != "" && issues.AsanaTokenSet() {
		projects, err = fetchProjects(ctx)
		if err != nil {
			log.Warn("could not list Asana projects", "error", err)
			fmt.Fprintf(cmd.ErrOrStderr(), "%s could not list Asana projects: %v\n", ui.WarningStyle.Render("!"), err)
		}
	}

	answers := answersFrom(cfg, repoPath)
	if err := initForm(&answers, repoPath, projects).RunWithContext(ctx); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return prompt.ErrCancelled
		}
		return err
	}
	if err := applyInit(cfg, answers, repoPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Saved %s\n", ui.SuccessStyle.Render("✓"), cfg.FilePath())
	return nil
}

func fetchProjects(ctx context.Context) ([]issues.AsanaProject, error) {
	return issues.NewAsanaProvider("").FetchProjects(ctx)
}
