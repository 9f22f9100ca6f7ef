package kafka

// Config holds Kafka connection parameters for the event producer.
type Config struct {
	// Brokers is the list of bootstrap broker addresses.
	Brokers []string

	// ClientID identifies this producer in broker logs and quotas.
	ClientID string
}
