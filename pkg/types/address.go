package types

// Address is stored as a JSON column on orders, mirroring how the
// storefront captures billing and shipping details at checkout.
type Address struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}
