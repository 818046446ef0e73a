package session

import (
	"github.com/chrisdamba/foodcart/internal/cart"
	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/chrisdamba/foodcart/internal/output"
	"go.uber.org/zap"
)

// emit writes an event. Event delivery never fails a cart operation.
func (s *Service) emit(topic string, event interface{}) {
	if s.dest == nil {
		return
	}
	if err := output.Emit(s.dest, topic, event); err != nil {
		s.logger.Warn("failed to emit event", zap.String("topic", topic), zap.Error(err))
	}
}

func (s *Service) emitLine(cartID, eventType, status string, line models.OrderItem) {
	event := output.CartLineEvent{
		Timestamp:  s.now().Unix(),
		EventType:  eventType,
		CartID:     cartID,
		ItemID:     int32(line.ID),
		Name:       line.Name,
		Signature:  cart.CartItemSignature(line),
		Quantity:   int32(line.Quantity),
		Status:     status,
		TotalPrice: cart.DisplayPrice(line.TotalPrice),
	}
	if line.Index != nil {
		event.Index = int32(*line.Index)
	}
	s.emit(models.TopicCartLines, event)
}

func (s *Service) emitValidation(sess *Session, result cart.ValidationResult, unknown []models.SimpleCartItem) {
	for _, line := range sess.Cart {
		s.emitLine(sess.ID, output.EventLineKept, models.LineStatusValid, line)
	}

	var missing, invalid int
	if result.Errors != nil {
		missing = len(result.Errors.MissingItems)
		invalid = len(result.Errors.InvalidItems)
		for _, line := range result.Errors.MissingItems {
			s.emitLine(sess.ID, output.EventLineDropped, models.LineStatusMissing, line)
		}
		for _, line := range result.Errors.InvalidItems {
			s.emitLine(sess.ID, output.EventLineDropped, models.LineStatusInvalid, line.OrderItem)
		}
	}
	for _, line := range unknown {
		s.emit(models.TopicCartLines, output.CartLineEvent{
			Timestamp: s.now().Unix(),
			EventType: output.EventLineDropped,
			CartID:    sess.ID,
			ItemID:    int32(line.ID),
			Quantity:  int32(line.Quantity),
			Status:    models.LineStatusMissing,
		})
	}
	missing += len(unknown)

	s.emit(models.TopicCartValidations, output.CartValidationEvent{
		Timestamp:    s.now().Unix(),
		EventType:    output.EventCartValidated,
		CartID:       sess.ID,
		Lines:        int32(len(sess.Cart) + missing + invalid),
		ValidLines:   int32(len(sess.Cart)),
		MissingLines: int32(missing),
		InvalidLines: int32(invalid),
		Total:        cart.DisplayPrice(cart.CartTotal(sess.Cart)),
	})
}
