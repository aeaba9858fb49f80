package entity

// Base holds the storage-assigned identity shared by persisted records.
type Base struct {
	ID int64 `db:"id"`
}
