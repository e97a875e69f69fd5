package catalog

// Address is a saved customer address usable for mobile grooming visits.
type Address struct {
	ID         int64
	Address    string
	City       string
	Province   string
	PostalCode string
	IsDefault  bool
}

// StoreLocation is a physical store for in-store appointments.
type StoreLocation struct {
	ID         int64
	Name       string
	Address    string
	City       string
	Province   string
	PostalCode string
}
