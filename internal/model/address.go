package model

type Address struct {
	AddressID   int64  `json:"addressId,omitempty"`
	UserID      int64  `json:"userId" validate:"required,gt=0"`
	Label       string `json:"label" validate:"required"`
	FullAddress string `json:"fullAddress" validate:"required,max=500"`
	IsDefault   bool   `json:"isDefault"`
}
