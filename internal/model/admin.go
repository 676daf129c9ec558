package model

type AdminStats struct {
	TotalUsers       int64   `json:"totalUsers"`
	TotalCustomers   int64   `json:"totalCustomers"`
	TotalStoreOwners int64   `json:"totalStoreOwners"`
	TotalOrders      int64   `json:"totalOrders"`
	TotalSessions    int64   `json:"totalSessions"`
	ActiveSessions   int64   `json:"activeSessions"`
	TotalDuration    int64   `json:"totalDuration"`
	AvgDuration      float64 `json:"avgDuration"`
}

// UsersByRole is the admin user listing keyed by role.
type UsersByRole map[Role][]User

// UserDetails is the admin view of a single user: the user fields
// flattened alongside their orders.
type UserDetails struct {
	User
	OrderCount int64   `json:"orderCount"`
	Orders     []Order `json:"orders"`
}

// Content is an admin-managed dashboard asset such as the buyer video.
type Content struct {
	ID          int64     `json:"id"`
	Filename    string    `json:"filename"`
	URL         string    `json:"url"`
	Type        string    `json:"type"`
	Active      bool      `json:"active"`
	LoopVideo   bool      `json:"loopVideo"`
	MuteDefault bool      `json:"muteDefault"`
	CreatedAt   Timestamp `json:"createdAt"`
}

const ContentBuyerVideo = "BUYER_VIDEO"
