package domain

// Store flag: a single governed key restricting non-admin trade writes.
const (
	SettingStoreStatus = "store_status"
	StoreOpen          = "open"
	StoreClosed        = "closed"
)
