package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/chrisdamba/foodcart/internal/models"
)

const (
	EventLineAdded      = "line_added"
	EventLineRemoved    = "line_removed"
	EventLineChanged    = "line_changed"
	EventLineKept       = "line_kept"
	EventLineDropped    = "line_dropped"
	EventCartValidated  = "cart_validated"
	EventOrderSubmitted = "order_submitted"
)

// CartLineEvent describes what happened to one line of a cart.
type CartLineEvent struct {
	Timestamp  int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType  string `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	CartID     string `json:"cartId" parquet:"name=cartId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Index      int32  `json:"index" parquet:"name=index,type=INT32"`
	ItemID     int32  `json:"itemId" parquet:"name=itemId,type=INT32"`
	Name       string `json:"name" parquet:"name=name,type=BYTE_ARRAY,convertedtype=UTF8"`
	Signature  string `json:"signature" parquet:"name=signature,type=BYTE_ARRAY,convertedtype=UTF8"`
	Quantity   int32  `json:"quantity" parquet:"name=quantity,type=INT32"`
	Status     string `json:"status" parquet:"name=status,type=BYTE_ARRAY,convertedtype=UTF8"`
	TotalPrice string `json:"totalPrice" parquet:"name=totalPrice,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// CartValidationEvent summarises one validation of a stored cart against the
// live catalog.
type CartValidationEvent struct {
	Timestamp    int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType    string `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	CartID       string `json:"cartId" parquet:"name=cartId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Lines        int32  `json:"lines" parquet:"name=lines,type=INT32"`
	ValidLines   int32  `json:"validLines" parquet:"name=validLines,type=INT32"`
	MissingLines int32  `json:"missingLines" parquet:"name=missingLines,type=INT32"`
	InvalidLines int32  `json:"invalidLines" parquet:"name=invalidLines,type=INT32"`
	Total        string `json:"total" parquet:"name=total,type=BYTE_ARRAY,convertedtype=UTF8"`
}

type OrderSubmittedEvent struct {
	Timestamp   int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType   string `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	CartID      string `json:"cartId" parquet:"name=cartId,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderID     string `json:"orderId" parquet:"name=orderId,type=BYTE_ARRAY,convertedtype=UTF8"`
	ServiceType string `json:"serviceType" parquet:"name=serviceType,type=BYTE_ARRAY,convertedtype=UTF8"`
	RequestedAt string `json:"requestedAt" parquet:"name=requestedAt,type=BYTE_ARRAY,convertedtype=UTF8"`
	Lines       int32  `json:"lines" parquet:"name=lines,type=INT32"`
	Quantity    int32  `json:"quantity" parquet:"name=quantity,type=INT32"`
	Total       string `json:"total" parquet:"name=total,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// header holds the fields every event shares.
type header struct {
	Timestamp int64  `json:"timestamp"`
	CartID    string `json:"cartId"`
}

func readHeader(msg []byte) (header, error) {
	var h header
	if err := json.Unmarshal(msg, &h); err != nil {
		return h, fmt.Errorf("invalid event: %w", err)
	}
	if h.Timestamp == 0 {
		return h, fmt.Errorf("invalid timestamp")
	}
	return h, nil
}

// partition returns the hourly partition path of an event time.
func partition(timestamp int64) string {
	t := time.Unix(timestamp, 0).UTC()
	year, month, day := t.Date()
	return fmt.Sprintf("year=%d/month=%02d/day=%02d/hour=%02d", year, month, day, t.Hour())
}

// baseTopic strips a Kafka topic prefix, if any.
func baseTopic(topic string) string {
	if i := strings.LastIndex(topic, "."); i >= 0 {
		return topic[i+1:]
	}
	return topic
}

// schemaFor returns the struct describing the rows of a topic.
func schemaFor(topic string) (interface{}, error) {
	switch baseTopic(topic) {
	case models.TopicCartLines:
		return new(CartLineEvent), nil
	case models.TopicCartValidations:
		return new(CartValidationEvent), nil
	case models.TopicOrdersSubmitted:
		return new(OrderSubmittedEvent), nil
	default:
		return nil, fmt.Errorf("unknown event type: %s", topic)
	}
}

// decodeRow decodes msg into the row type of topic.
func decodeRow(topic string, msg []byte) (interface{}, error) {
	var (
		row interface{}
		err error
	)
	switch baseTopic(topic) {
	case models.TopicCartLines:
		var e CartLineEvent
		err = json.Unmarshal(msg, &e)
		row = e
	case models.TopicCartValidations:
		var e CartValidationEvent
		err = json.Unmarshal(msg, &e)
		row = e
	case models.TopicOrdersSubmitted:
		var e OrderSubmittedEvent
		err = json.Unmarshal(msg, &e)
		row = e
	default:
		return nil, fmt.Errorf("unknown event type: %s", topic)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding %s event: %w", topic, err)
	}
	return row, nil
}
