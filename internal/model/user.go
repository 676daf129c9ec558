package model

type Role string

const (
	RoleCustomer   Role = "CUSTOMER"
	RoleStoreOwner Role = "STORE_OWNER"
	RoleAdmin      Role = "ADMIN"
)

type User struct {
	UserID                    int64     `json:"userId"`
	Email                     string    `json:"email"`
	MobileNumber              string    `json:"mobileNumber"`
	FirstName                 string    `json:"firstName"`
	LastName                  string    `json:"lastName"`
	FullName                  string    `json:"fullName,omitempty"`
	Role                      Role      `json:"role"`
	EmailNotificationsEnabled bool      `json:"emailNotificationsEnabled"`
	CreatedAt                 Timestamp `json:"createdAt"`
}

// DisplayName prefers the server-computed full name.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}

// AuthUser is the logged-in user object returned by login and register
// and persisted locally between runs.
type AuthUser struct {
	Token    string `json:"token"`
	Message  string `json:"message,omitempty"`
	UserName string `json:"userName"`
	Role     Role   `json:"role"`
	UserID   int64  `json:"userId"`
	StoreID  *int64 `json:"storeId,omitempty"`
}

func (a AuthUser) IsCustomer() bool   { return a.Role == RoleCustomer }
func (a AuthUser) IsStoreOwner() bool { return a.Role == RoleStoreOwner }
func (a AuthUser) IsAdmin() bool      { return a.Role == RoleAdmin }

type LoginRequest struct {
	ContactInfo string `json:"contactInfo" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	MobileNumber string `json:"mobileNumber" validate:"required,min=10,max=15"`
	Password     string `json:"password" validate:"required,min=6"`
	Role         Role   `json:"role" validate:"required,oneof=CUSTOMER STORE_OWNER"`
	OTP          string `json:"otp" validate:"required"`
}

type ProfileUpdate struct {
	FirstName                 string `json:"firstName,omitempty"`
	LastName                  string `json:"lastName,omitempty"`
	Email                     string `json:"email,omitempty" validate:"omitempty,email"`
	MobileNumber              string `json:"mobileNumber,omitempty"`
	EmailNotificationsEnabled *bool  `json:"emailNotificationsEnabled,omitempty"`
}

type LoginSession struct {
	SessionID         int64      `json:"sessionId"`
	LoginTime         Timestamp  `json:"loginTime"`
	LogoutTime        *Timestamp `json:"logoutTime"`
	IPAddress         string     `json:"ipAddress"`
	UserAgent         string     `json:"userAgent"`
	DurationInSeconds int64      `json:"durationInSeconds"`
	FormattedDuration string     `json:"formattedDuration"`
	Active            bool       `json:"active"`
}
