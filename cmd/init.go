package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rnwolfe/habit/internal/config"
	"github.com/rnwolfe/habit/internal/frequency"
	"github.com/rnwolfe/habit/internal/store"
	"github.com/rnwolfe/habit/internal/ui"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up habit for the first time",
	Long:  `Write a config file with your preferences and create the habit database.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config")
}

func runInit(_ *cobra.Command, _ []string) error {
	return runInitWithReader(bufio.NewReader(os.Stdin))
}

func runInitWithReader(reader *bufio.Reader) error {
	if config.Initialized() && !initForce {
		ui.Inf("Already set up. Use --force to start the config over.")
		ui.Kv("Config", config.GetPaths().ConfigFile)
		return nil
	}

	fmt.Println(ui.Banner.Render(ui.IconHabit + "Welcome to habit!"))
	fmt.Println()

	cfg := config.Default()
	cfg.User.Name = prompt(reader, "  What should I call you?", os.Getenv("USER"))

	for {
		days := prompt(reader, "  Default days for new habits?", cfg.Habits.DefaultFrequency)
		if _, err := frequency.ParseMask(days); err != nil {
			ui.Warn(err.Error())
			continue
		}
		cfg.Habits.DefaultFrequency = days
		break
	}
	fmt.Println()

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	db.Close()

	paths := config.GetPaths()
	ui.Ok("All set")
	ui.Kv("Config", paths.ConfigFile)
	ui.Kv("Data", paths.DBFile)
	ui.Tip("`habit add \"Stretch\" --days weekdays` to add your first habit.")
	fmt.Println()
	return nil
}

// prompt reads one line, returning defaultVal for an empty answer or EOF.
func prompt(reader *bufio.Reader, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s %s ", question, ui.Muted.Render(fmt.Sprintf("(%s)", defaultVal)))
	} else {
		fmt.Printf("%s ", question)
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}
