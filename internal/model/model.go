package model

// Store paths. Case-sensitive; every backend mirrors them exactly.
const (
	PathPackages       = "packages"
	PathUsers          = "users"
	PathTopupRequests  = "topupRequests"
	PathPaymentMethods = "paymentMethods"
)

// Order status literals. /complete and /fail write these verbatim,
// including the casing.
const (
	StatusPending   = "pending"
	StatusCompleted = "Completed"
	StatusFailed    = "Failed"
)

// StatusActive is the default package status.
const StatusActive = "Active"

// Package is one purchasable catalog item, stored under
// packages/<category>/<pushKey>. The category is the path segment, not a
// field.
type Package struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt,omitempty"`
	UpdatedAt string  `json:"updatedAt,omitempty"`
}

// Order is a topup request under topupRequests/<orderId>. Orders are
// created by the customer-facing flow; this bot only flips their status.
type Order struct {
	Username string  `json:"username"`
	Package  string  `json:"package"`
	Amount   float64 `json:"amount"`
	Method   string  `json:"method"`
	Status   string  `json:"status"`
}

// User is a registered customer under users/<id>, read-only here.
type User struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

// PaymentMethod holds the wallet number shown to customers, under
// paymentMethods/<method>. /editpayment replaces the whole record.
type PaymentMethod struct {
	Number      string `json:"number"`
	Description string `json:"description"`
	UpdatedAt   string `json:"updatedAt"`
}

// PaymentMethodNames is the closed set of accepted wallet providers.
var PaymentMethodNames = []string{"bKash", "Nagad"}

// ValidPaymentMethod reports whether m is an accepted provider. Exact
// match: the method is also the store path segment.
func ValidPaymentMethod(m string) bool {
	for _, name := range PaymentMethodNames {
		if m == name {
			return true
		}
	}
	return false
}
