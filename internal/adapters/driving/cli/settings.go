package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eywa-run/eywa/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and configure application settings",
	RunE:  runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsDeviceCmd = &cobra.Command{
	Use:   "device [auto|cpu|metal|cuda]",
	Short: "Set the model runtime's compute device preference",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsDevice,
}

var settingsFusionCmd = &cobra.Command{
	Use:   "fusion [dense-weight] [lexical-weight]",
	Short: "Set the hybrid search fusion weights",
	Long:  `Weights must be non-negative and sum to 1.0.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsFusion,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsDeviceCmd)
	settingsCmd.AddCommand(settingsFusionCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	settings, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Model:      %s\n", settings.Embedding.ID)
	cmd.Printf("  Dimensions: %d\n", settings.Embedding.Dimensions)
	cmd.Println()

	cmd.Println("[Reranker]")
	cmd.Printf("  Model: %s\n", settings.Reranker.ID)
	cmd.Println()

	cmd.Println("[Device]")
	cmd.Printf("  Preference: %s\n", settings.Device)
	cmd.Println()

	cmd.Println("[Chunking]")
	cmd.Printf("  Chunk size: %d\n", settings.Chunking.ChunkSize)
	cmd.Printf("  Overlap:    %d\n", settings.Chunking.Overlap)
	cmd.Println()

	cmd.Println("[Vector Index]")
	cmd.Printf("  Max elements:    %d\n", settings.VectorIndex.MaxElements)
	cmd.Printf("  EF construction: %d\n", settings.VectorIndex.EFConstruction)
	cmd.Printf("  M:               %d\n", settings.VectorIndex.M)
	cmd.Println()

	cmd.Println("[Fusion]")
	cmd.Printf("  Dense weight:   %.2f\n", settings.Fusion.DenseWeight)
	cmd.Printf("  Lexical weight: %.2f\n", settings.Fusion.LexicalWeight)
	cmd.Printf("  Fusion top-K:   %d\n", settings.Fusion.FusionTopK)
	cmd.Println()

	cmd.Printf("Config file: %s\n", configStore.Path())
	return nil
}

func runSettingsDevice(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	pref := domain.DevicePreference(args[0])
	if !pref.IsValid() {
		return fmt.Errorf("invalid device preference: %s", args[0])
	}

	settings, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	settings.Device = pref
	if err := configStore.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Device preference set to: %s\n", pref)
	cmd.Println("Restart eywa for this change to take effect.")
	return nil
}

func runSettingsFusion(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	var dense, lexical float64
	if _, err := fmt.Sscanf(args[0], "%f", &dense); err != nil {
		return fmt.Errorf("invalid dense weight: %s", args[0])
	}
	if _, err := fmt.Sscanf(args[1], "%f", &lexical); err != nil {
		return fmt.Errorf("invalid lexical weight: %s", args[1])
	}
	if dense < 0 || lexical < 0 {
		return errors.New("weights must be non-negative")
	}
	const tolerance = 0.001
	if sum := dense + lexical; sum < 1-tolerance || sum > 1+tolerance {
		return fmt.Errorf("weights must sum to 1.0, got %.3f", sum)
	}

	settings, err := configStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	settings.Fusion.DenseWeight = dense
	settings.Fusion.LexicalWeight = lexical
	if err := configStore.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Fusion weights set to dense=%.2f lexical=%.2f\n", dense, lexical)
	return nil
}
