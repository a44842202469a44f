package cancel_booking

// CancelBookingRequest HTTP request model
// customerId обязателен на гостевом маршруте и игнорируется на админском
type CancelBookingRequest struct {
	CustomerID *int64 `json:"customerId,omitempty"`
}
