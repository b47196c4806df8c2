package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"supplychain-admin/internal/configs"
	"supplychain-admin/internal/models"
	"supplychain-admin/internal/transport/kafka"
)

// publisher sends delivery-status messages to the status topic. The file holds one
// message object or an array of them.
func main() {
	path := flag.String("file", "", "status message JSON (defaults to STATUS_SAMPLE_PATH)")
	flag.Parse()

	cfg, err := configs.LoadConfig(".env")
	if err != nil {
		logrus.Fatalf("error loading config: %s", err)
	}
	logrus.Print("config loaded")
	if *path == "" {
		*path = cfg.StatusSamplePath
	}

	body, err := os.ReadFile(*path)
	if err != nil {
		logrus.Fatalf("read json file: %s", err)
	}
	msgs, err := decodeMessages(body)
	if err != nil {
		logrus.Fatalf("decode %s: %s", *path, err)
	}

	pub := kafka.NewPublisher(cfg.KafkaBrokersSlice(), cfg.KafkaStatusTopic)
	defer func() {
		if cerr := pub.Close(); cerr != nil {
			logrus.Errorf("publisher close: %v", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, m := range msgs {
		payload, err := json.Marshal(m)
		if err != nil {
			logrus.Fatalf("encode: %s", err)
		}
		key := []byte("delivery-" + strconv.FormatInt(m.DeliveryID, 10))
		if err := pub.Publish(ctx, key, payload); err != nil {
			logrus.Fatalf("publish failed: %s", err)
		}
	}
	logrus.WithField("count", len(msgs)).Print("published delivery status messages")
}

func decodeMessages(body []byte) ([]models.DeliveryStatusMessage, error) {
	var many []models.DeliveryStatusMessage
	if err := json.Unmarshal(body, &many); err == nil {
		return many, nil
	}
	var one models.DeliveryStatusMessage
	if err := json.Unmarshal(body, &one); err != nil {
		return nil, err
	}
	return []models.DeliveryStatusMessage{one}, nil
}
