package tourctl

import (
	"fmt"
	"strings"

	"github.com/louisbranch/balitours/internal/tours/bootstrap"
	"github.com/spf13/cobra"
)

func bookCmd(cfg *Config) *cobra.Command {
	var number string
	cmd := &cobra.Command{
		Use:   "book [subject...]",
		Short: "Print the WhatsApp booking link for a tour or destination",
		Long:  "Print the WhatsApp booking link for a tour or destination. With no subject the link asks for a custom itinerary.",
		RunE: func(cmd *cobra.Command, args []string) error {
			contactCfg := cfg.Contact
			if strings.TrimSpace(number) != "" {
				contactCfg.Number = number
			}
			dispatcher, err := bootstrap.NewDispatcher(contactCfg, stderrLogger(cmd))
			if err != nil {
				return err
			}
			uri := dispatcher.Dispatch(cmd.Context(), strings.Join(args, " "), BookingSource)
			if err := dispatcher.Close(); err != nil {
				return fmt.Errorf("close dispatcher: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), uri)
			return err
		},
	}
	cmd.Flags().StringVar(&number, "number", "", "WhatsApp number (default: configured contact number)")
	return cmd
}
