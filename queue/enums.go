package queue

type ExchangeType string

const (
	ExchangeDirect ExchangeType = "direct"
	ExchangeTopic  ExchangeType = "topic"
	ExchangeFanout ExchangeType = "fanout"
)

const (
	DeliveryTransient  uint8 = 1
	DeliveryPersistent uint8 = 2
)
