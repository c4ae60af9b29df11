package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/ouroboros-foundation/portal/internal/core/events"
	"github.com/ouroboros-foundation/portal/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event bus commands",
	Long:  `Inspect and exercise the in-process event bus`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Long:  `Publish a test event to the event bus for debugging subscriber wiring`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent(args[0])
	},
}

var eventData string

var knownEventTypes = []string{
	events.EventTypeProposalApproved,
	events.EventTypeProposalRejected,
	events.EventTypeClearanceChanged,
}

func publishTestEvent(eventType string) {
	log := logger.LoggerWrapper()

	known := false
	for _, t := range knownEventTypes {
		if t == eventType {
			known = true
			break
		}
	}
	if !known {
		log.Warn("event type is not one the portal publishes", "event_type", eventType, "known", knownEventTypes)
	}

	eventBus := events.NewEventBus(log)

	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		log.Info("test subscriber received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	testEvent := events.BaseEvent{
		ID:        fmt.Sprintf("test-%d", time.Now().Unix()),
		Type:      eventType,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"message": eventData,
			"source":  "portal-cli",
		},
	}

	log.Info("publishing test event", "event_type", eventType, "event_id", testEvent.ID)

	ctx := context.Background()
	if err := eventBus.Publish(ctx, testEvent); err != nil {
		log.Error("failed to publish event", "error", err)
		return
	}

	// Publish dispatches asynchronously; give the subscriber a beat.
	time.Sleep(100 * time.Millisecond)
	log.Info("test event published")
}

func init() {
	publishEventCmd.Flags().StringVar(&eventData, "data", "test message", "Event data message")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
