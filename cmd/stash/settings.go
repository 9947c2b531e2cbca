package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/panpantou/stash/internal/cli"
	"github.com/panpantou/stash/internal/common"
	"github.com/panpantou/stash/internal/currency"
	"github.com/panpantou/stash/internal/reminder"
)

// settingKeys maps the short names users type to viper keys.
var settingKeys = map[string]string{
	"currency": "currency.symbol",
	"reminder": "reminder.frequency",
}

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change settings",
		Long: `View and change settings.

Keys:
  currency   display currency symbol (` + strings.Join(currency.Symbols(), ", ") + `)
  reminder   snapshot reminder frequency (none, weekly, biweekly, monthly)`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show all settings",
		RunE:  runSettingsList,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Show one setting",
		Args:  cobra.ExactArgs(1),
		RunE:  runSettingsGet,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Args:  cobra.ExactArgs(2),
		RunE:  runSettingsSet,
	})

	return cmd
}

func runSettingsList(cmd *cobra.Command, _ []string) error {
	cmd.Println(cli.FormatTitle("Settings"))
	cmd.Println(cli.RenderTable([]string{"Key", "Value"}, [][]string{
		{"currency", viper.GetString("currency.symbol")},
		{"reminder", viper.GetString("reminder.frequency")},
	}))
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	key, ok := settingKeys[args[0]]
	if !ok {
		return common.NewUserError(fmt.Sprintf("unknown setting %q", args[0]), nil)
	}
	cmd.Println(viper.GetString(key))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, ok := settingKeys[args[0]]
	if !ok {
		return common.NewUserError(fmt.Sprintf("unknown setting %q", args[0]), nil)
	}
	value := args[1]

	switch key {
	case "currency.symbol":
		if !currency.IsValidSymbol(value) {
			return common.NewUserError(
				fmt.Sprintf("unknown currency %q, expected one of: %s", value, strings.Join(currency.Symbols(), ", ")),
				common.ErrInvalidCurrency)
		}

	case "reminder.frequency":
		frequency, err := reminder.ParseFrequency(value)
		if err != nil {
			return err
		}
		// Changing the frequency re-schedules the reminder immediately.
		var scheduler reminder.Scheduler = reminder.NewLogScheduler()
		if err := scheduler.Schedule(frequency); err != nil {
			return err
		}
		if next, ok := reminder.NextReminder(frequency, time.Now()); ok {
			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Next reminder: %s", next.Format("Mon 2 Jan 2006 15:04"))))
		} else {
			cmd.Println(cli.FormatSuccess("Reminders disabled"))
		}
	}

	viper.Set(key, value)
	if err := writeSettings(); err != nil {
		return err
	}

	cmd.Println(cli.FormatSuccess(fmt.Sprintf("Set %s to %s", args[0], value)))
	return nil
}

// writeSettings persists the current configuration, creating the config
// file on first use.
func writeSettings() error {
	if err := viper.WriteConfig(); err == nil {
		return nil
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		return fmt.Errorf("failed to write config: %w", err)
	}

	configDir, err := defaultConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.SafeWriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
