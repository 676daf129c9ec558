package model

type Store struct {
	StoreID       int64     `json:"storeId"`
	StoreName     string    `json:"storeName"`
	StoreAddress  string    `json:"storeAddress"`
	ContactNumber string    `json:"contactNumber"`
	StoreLogoURL  string    `json:"storeLogoUrl"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	CreatedAt     Timestamp `json:"createdAt"`
}

type Category struct {
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Section      string `json:"section,omitempty"`
}

type Subcategory struct {
	SubcategoryID   int64  `json:"subcategoryId"`
	SubcategoryName string `json:"subcategoryName"`
}

type Product struct {
	ProductID       int64        `json:"productId"`
	Store           *Store       `json:"store,omitempty"`
	Category        *Category    `json:"category,omitempty"`
	Subcategory     *Subcategory `json:"subcategory,omitempty"`
	ProductName     string       `json:"productName"`
	Description     string       `json:"description"`
	Price           float64      `json:"price"`
	QuantityInStock int          `json:"quantityInStock"`
	ImageURLs       []string     `json:"imageUrls"`
	Active          bool         `json:"active"`
}

// ProductInput is sent as form fields of a multipart product create/update.
type ProductInput struct {
	ProductName     string  `json:"productName" validate:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" validate:"gt=0"`
	QuantityInStock int     `json:"quantityInStock" validate:"gte=0"`
}

// StoreInput is sent as form fields of a multipart store register/update.
type StoreInput struct {
	StoreName     string   `json:"storeName" validate:"required"`
	StoreAddress  string   `json:"storeAddress" validate:"required"`
	ContactNumber string   `json:"contactNumber"`
	Latitude      *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude     *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

// CategoryProducts is one group returned by the all-by-category listing.
type CategoryProducts struct {
	CategoryName string    `json:"categoryName"`
	Section      string    `json:"section,omitempty"`
	Products     []Product `json:"products"`
}
