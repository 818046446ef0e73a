package models

const (
	ServiceTypePickup   = "PICKUP"
	ServiceTypeDelivery = "DELIVERY"
	ServiceTypeWalkin   = "WALKIN"

	OrderTypeOLO      = "OLO"
	OrderTypeCatering = "CATERING"
	OrderTypeMerch    = "MERCH"

	RequestedAtASAP = "asap"

	LineStatusValid   = "valid"
	LineStatusMissing = "missing"
	LineStatusInvalid = "invalid"

	TopicCartLines       = "cart_line_events"
	TopicCartValidations = "cart_validation_events"
	TopicOrdersSubmitted = "order_submitted_events"

	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"

	OutputConsole = "console"
	OutputJSON    = "json"
	OutputParquet = "parquet"
)

var ServiceTypeNames = map[string]string{
	ServiceTypeWalkin:   "Dine-In",
	ServiceTypePickup:   "Pickup",
	ServiceTypeDelivery: "Delivery",
}

var OrderTypeNames = map[string]string{
	OrderTypeOLO:      "Regular",
	OrderTypeCatering: "Catering",
	OrderTypeMerch:    "Merch",
}
