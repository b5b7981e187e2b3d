package order

// Status is an order status as reported by the store backend. Values outside
// the known set are kept verbatim and are never cancellable.
type Status string

const (
	StatusPending          Status = "PENDING"
	StatusConfirmed        Status = "CONFIRMED"
	StatusAwaitingShipment Status = "AWAITING_SHIPMENT"
	StatusShipped          Status = "SHIPPED"
	StatusInTransit        Status = "IN_TRANSIT"
	StatusDelivered        Status = "DELIVERED"
	StatusCancelled        Status = "CANCELLED"
	StatusRefunded         Status = "REFUNDED"
)

var cancellable = map[Status]bool{
	StatusPending:          true,
	StatusConfirmed:        true,
	StatusAwaitingShipment: true,
	StatusShipped:          false,
	StatusInTransit:        false,
	StatusDelivered:        false,
	StatusCancelled:        false,
	StatusRefunded:         false,
}

// Terminal reports statuses no further transition leaves.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusRefunded
}

// IsCancellable reports whether a cancel may be attempted from s. Unknown
// statuses fail closed.
func IsCancellable(s Status) bool {
	return cancellable[s]
}

var colorClasses = map[Status]string{
	StatusPending:          "bg-yellow-100 text-yellow-800",
	StatusConfirmed:        "bg-blue-100 text-blue-800",
	StatusAwaitingShipment: "bg-orange-100 text-orange-800",
	StatusShipped:          "bg-purple-100 text-purple-800",
	StatusInTransit:        "bg-cyan-100 text-cyan-800",
	StatusDelivered:        "bg-green-100 text-green-800",
	StatusCancelled:        "bg-gray-200 text-gray-700",
	StatusRefunded:         "bg-gray-100 text-gray-500",
}

const unknownColorClass = "bg-gray-200 text-gray-600"

func ColorClass(s Status) string {
	if c, ok := colorClasses[s]; ok {
		return c
	}
	return unknownColorClass
}
