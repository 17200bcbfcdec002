package entity

// Merchant is the contractor directory entry the notification dispatcher
// resolves delivery addresses from. Owned by the merchant-management
// subsystem; read-only here.
type Merchant struct {
	ID            string
	Name          string
	Email         string
	NotifyByEmail bool
}
