package tourctl

import (
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/balitours/internal/tours/contact"
	"github.com/louisbranch/balitours/internal/tours/events"
	"github.com/spf13/cobra"
)

func intentsCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intents",
		Short: "Inspect booking intents published to Kafka",
	}
	cmd.AddCommand(intentsTailCmd(cfg))
	return cmd
}

func intentsTailCmd(cfg *Config) *cobra.Command {
	var groupID string
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print booking intents as they arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(cfg.Contact.KafkaBrokers) == "" {
				return fmt.Errorf("kafka brokers are required (set BALITOURS_KAFKA_BROKERS or --brokers)")
			}
			reader, err := events.NewReader(cfg.Contact.KafkaBrokers, cfg.Contact.KafkaTopic, groupID)
			if err != nil {
				return err
			}
			defer reader.Close()

			out := cmd.OutOrStdout()
			return events.Tail(cmd.Context(), reader, func(intent contact.Intent) error {
				_, err := fmt.Fprintln(out, formatIntent(intent))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&cfg.Contact.KafkaBrokers, "brokers", cfg.Contact.KafkaBrokers, "Comma-separated Kafka brokers")
	cmd.Flags().StringVar(&cfg.Contact.KafkaTopic, "topic", cfg.Contact.KafkaTopic, "Booking intent topic")
	cmd.Flags().StringVar(&groupID, "group", "", "Consumer group id (default: no group)")
	return cmd
}

func formatIntent(intent contact.Intent) string {
	subject := intent.Subject
	if subject == "" {
		subject = "(custom tour)"
	}
	source := intent.Source
	if source == "" {
		source = "-"
	}
	return fmt.Sprintf("%s  %-4s  %s", intent.OccurredAt.UTC().Format(time.RFC3339), source, subject)
}
