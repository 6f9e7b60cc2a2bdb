package interfaces

// IOrderIDGenerator produces human readable order ids. Ids are not
// guaranteed unique; the order store rejects duplicates.
type IOrderIDGenerator interface {
	Next() string
}
