// Command watch is the terminal-side sync loop: it consumes change
// events from the broker and re-fetches the affected resources from the
// dispatch API, falling back to interval polling when the broker is
// unreachable. Useful as a smoke client and as the reference consumer
// for the change protocol.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/internal/adapters/out/rabbit"
	"dispatch/internal/changes"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")

	amqpURL := os.Getenv("AMQP_URL")
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	events := subscribe(ctx, amqpURL, logger)

	fetches := map[string]changes.Fetch{
		changes.ResourceOrders:  fetchResource(apiURL+"/api/v1/orders", logger),
		changes.ResourceDrivers: fetchResource(apiURL+"/api/v1/drivers", logger),
	}

	changes.NewWatcher(fetches, events, logger).Run(ctx)
}

// subscribe returns the broker event stream, or nil when the broker is
// unreachable so the watcher runs on polling alone.
func subscribe(ctx context.Context, amqpURL string, logger *slog.Logger) <-chan changes.Change {
	notifier, err := rabbit.Dial(amqpURL, logger)
	if err != nil {
		logger.Warn("Message broker unreachable, polling only", "error", err)
		return nil
	}

	events, err := notifier.Notifications(ctx)
	if err != nil {
		logger.Warn("Subscription failed, polling only", "error", err)
		notifier.Close()
		return nil
	}

	go func() {
		<-ctx.Done()
		notifier.Close()
	}()

	return events
}

func fetchResource(url string, logger *slog.Logger) changes.Fetch {
	client := &http.Client{Timeout: 10 * time.Second}

	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
		}

		logger.Info("Fetched", "url", url, "bytes", len(body))
		return nil
	}
}
