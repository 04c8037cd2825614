package queue

type ConnectionConfig struct {
	// URI: The RabbitMQ connection URI, which includes the address, port, and authentication credentials if necessary
	URI string
	// Exchange is declared on connect when its Name is set.
	Exchange *ExchangeConfig
}

type ExchangeConfig struct {
	Name string
	// Type defaults to topic.
	Type ExchangeType
	// Durable: Indicates whether the exchange survives a broker restart.
	Durable bool
}

type PublishConfig struct {
	// Exchange: The name of the exchange to be used for message publishing.
	Exchange string
	// RoutingKey: The routing key to be used for message publishing.
	RoutingKey string
	// ContentType: The content type of the message to be published.
	// See https://www.rabbitmq.com/amqp-0-9-1-reference.html#content-subtype
	ContentType string
	// DeliveryMode: The delivery mode of the message to be published.
	// 1 = non-persistent (transient)
	// 2 = persistent
	DeliveryMode uint8
}

// See https://www.rabbitmq.com/tutorials/amqp-concepts-tutorial.html
