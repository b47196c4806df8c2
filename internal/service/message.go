package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"supplychain-admin/internal/models"
)

// HandleStatusMessage applies one delivery-status message as its own unit of work.
func (s *Service) HandleStatusMessage(ctx context.Context, payload []byte) error {
	var msg models.DeliveryStatusMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := s.validate(msg); err != nil {
		return err
	}

	status := msg.Status
	if err := s.UpdateDelivery(ctx, msg.DeliveryID, models.UpdateDelivery{Status: &status}); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"delivery_id": msg.DeliveryID, "status": msg.Status}).Debug("status applied")
	return nil
}
