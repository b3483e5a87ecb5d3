package catalog

// Product is an entry in the storefront collection.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Catalog serves the static product collection shown on the shop page.
type Catalog struct {
	products []Product
}

// New returns the seeded storefront catalog.
func New() *Catalog {
	return &Catalog{products: []Product{
		{ID: "1", Name: "Classic Jacket", Price: 120, Image: "/images/product1.webp"},
		{ID: "2", Name: "Elegant Shirt", Price: 80, Image: "/images/product2.webp"},
		{ID: "3", Name: "Stylish Pants", Price: 90, Image: "/images/product3.webp"},
		{ID: "4", Name: "Trendy Sneakers", Price: 110, Image: "/images/product4.webp"},
		{ID: "5", Name: "Denim Jacket", Price: 120, Image: "/images/product5.jpg"},
		{ID: "6", Name: "Wool Overcoat", Price: 150, Image: "/images/product6.webp"},
	}}
}

// List returns every product in display order.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Find returns the product with the given ID.
func (c *Catalog) Find(id string) (Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
