package kafka

// NewOrderEventPublisherWithWriter exposes the writer seam to tests.
var NewOrderEventPublisherWithWriter = newOrderEventPublisher
