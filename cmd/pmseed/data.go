package main

import (
	"github.com/dalemusser/pmhub/internal/domain/models"
)

type seedUser struct {
	Name  string
	Email string
	Role  string
}

var sampleUsers = []seedUser{
	{Name: "Ada Admin", Email: "admin@pmhub.local", Role: "admin"},
	{Name: "Max Manager", Email: "manager@pmhub.local", Role: "manager"},
	{Name: "Dana Developer", Email: "dana@pmhub.local", Role: "developer"},
	{Name: "Devon Developer", Email: "devon@pmhub.local", Role: "developer"},
}

var sampleProducts = []models.Product{
	{
		Name:          "Wireless Bluetooth Headphones",
		Price:         79.99,
		Description:   "High-quality wireless headphones with noise cancellation and 30-hour battery life. Perfect for music lovers and professionals.",
		Category:      "Electronics",
		ImageURL:      "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400",
		StockQuantity: 25,
		InStock:       true,
	},
	{
		Name:          "Organic Cotton T-Shirt",
		Price:         24.99,
		Description:   "Comfortable and sustainable organic cotton t-shirt. Available in multiple colors and sizes. Made from 100% organic cotton.",
		Category:      "Clothing",
		ImageURL:      "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400",
		StockQuantity: 50,
		InStock:       true,
	},
	{
		Name:          "Stainless Steel Water Bottle",
		Price:         19.99,
		Description:   "Insulated stainless steel water bottle that keeps drinks cold for 24 hours or hot for 12 hours. BPA-free and leak-proof.",
		Category:      "Home & Kitchen",
		ImageURL:      "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=400",
		StockQuantity: 30,
		InStock:       true,
	},
	{
		Name:          "Mechanical Gaming Keyboard",
		Price:         129.99,
		Description:   "RGB backlit mechanical keyboard with Cherry MX switches. Perfect for gaming and programming with customizable lighting effects.",
		Category:      "Electronics",
		ImageURL:      "https://images.unsplash.com/photo-1541140532154-b024d705b90a?w=400",
		StockQuantity: 15,
		InStock:       true,
	},
	{
		Name:          "Yoga Mat Premium",
		Price:         39.99,
		Description:   "Non-slip yoga mat made from eco-friendly materials. Extra thick for comfort and durability. Perfect for all types of yoga practice.",
		Category:      "Sports & Fitness",
		ImageURL:      "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=400",
		StockQuantity: 20,
		InStock:       true,
	},
	{
		Name:          "Ceramic Coffee Mug Set",
		Price:         29.99,
		Description:   "Set of 4 handcrafted ceramic coffee mugs. Each mug holds 12oz and features a unique design. Dishwasher and microwave safe.",
		Category:      "Home & Kitchen",
		ImageURL:      "https://images.unsplash.com/photo-1514228742587-6b1558fcf93a?w=400",
		StockQuantity: 40,
		InStock:       true,
	},
	{
		Name:          "Wireless Phone Charger",
		Price:         34.99,
		Description:   "Fast wireless charging pad compatible with all Qi-enabled devices. LED indicator and non-slip surface. Charges up to 10W.",
		Category:      "Electronics",
		ImageURL:      "https://images.unsplash.com/photo-1583394838336-acd977736f90?w=400",
		StockQuantity: 0,
		InStock:       false,
	},
	{
		Name:          "Leather Wallet",
		Price:         49.99,
		Description:   "Genuine leather bi-fold wallet with RFID blocking technology. Multiple card slots and cash compartment. Handcrafted with attention to detail.",
		Category:      "Accessories",
		ImageURL:      "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400",
		StockQuantity: 12,
		InStock:       true,
	},
	{
		Name:          "Bluetooth Speaker",
		Price:         59.99,
		Description:   "Portable Bluetooth speaker with 360-degree sound. Waterproof design perfect for outdoor activities. 12-hour battery life.",
		Category:      "Electronics",
		ImageURL:      "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=400",
		StockQuantity: 8,
		InStock:       true,
	},
	{
		Name:          "Essential Oil Diffuser",
		Price:         44.99,
		Description:   "Ultrasonic essential oil diffuser with LED color changing lights. Large capacity water tank and timer function. Perfect for aromatherapy.",
		Category:      "Home & Kitchen",
		ImageURL:      "https://images.unsplash.com/photo-1607853204693-96d6675fd655?w=400",
		StockQuantity: 18,
		InStock:       true,
	},
}

type seedProject struct {
	Name        string
	Description string
	Status      string
	Priority    string
	Tasks       []string
}

var sampleProjects = []seedProject{
	{
		Name:        "Website Redesign",
		Description: "Refresh the marketing site and move it to the new component library.",
		Status:      models.ProjectActive,
		Priority:    models.PriorityHigh,
		Tasks:       []string{"Audit existing pages", "Build navigation component", "Migrate product pages"},
	},
	{
		Name:        "Inventory Sync",
		Description: "Nightly sync of stock levels from the warehouse system.",
		Status:      models.ProjectPlanned,
		Priority:    models.PriorityMedium,
		Tasks:       []string{"Define sync contract", "Write importer"},
	},
	{
		Name:        "Mobile Checkout",
		Description: "Streamlined checkout flow for small screens.",
		Status:      models.ProjectCompleted,
		Priority:    models.PriorityLow,
		Tasks:       []string{"Usability study"},
	},
}
