package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// printOutput writes v to stdout in the configured format. YAML is rendered
// from the JSON form so field names match the JSON tags.
func printOutput(cmd *cobra.Command, v interface{}) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	if GetConfig(cmd).Output == "yaml" {
		var generic interface{}
		if err := yaml.Unmarshal(bz, &generic); err != nil {
			return fmt.Errorf("failed to convert output: %w", err)
		}
		if bz, err = yaml.Marshal(generic); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), string(bz))
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}
