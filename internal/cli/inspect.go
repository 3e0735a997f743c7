package cli

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/kolah/swaggen/internal/loader"
	"github.com/spf13/cobra"
)

func InspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <spec>",
		Short: "Print the intermediate model of a document as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := loader.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("loading spec: %w", err)
			}

			spec, err := loader.Transform(result)
			if err != nil {
				return fmt.Errorf("transforming spec: %w", err)
			}

			out, err := json.MarshalIndent(spec, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}

			cmd.Println(string(out))
			return nil
		},
	}
}
