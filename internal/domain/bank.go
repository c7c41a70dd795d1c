package domain

// BankIdentity is a canonical registry entry. Created once by the storage
// setup migrations; read-only to the pipeline.
type BankIdentity struct {
	ID            int64
	CanonicalName string
	AppName       string
}
