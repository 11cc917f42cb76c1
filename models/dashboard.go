package models

// FanDashboard is the read-only rollup shown to a customer.
type FanDashboard struct {
	TotalBookings     int    `json:"total_bookings"`
	CompletedBookings int    `json:"completed_bookings"`
	PendingBookings   int    `json:"pending_bookings"`
	TotalSpend        string `json:"total_spend"`
}

// TalentDashboard is the read-only rollup shown to a talent.
type TalentDashboard struct {
	TotalBookings     int     `json:"total_bookings"`
	CompletedBookings int     `json:"completed_bookings"`
	PendingBookings   int     `json:"pending_bookings"`
	TotalEarnings     string  `json:"total_earnings"`
	AverageRating     float64 `json:"average_rating"`
	MonthlyGrowthPct  float64 `json:"monthly_growth_pct"`
}

// AdminDashboard is the platform-wide rollup shown to an admin.
type AdminDashboard struct {
	TotalBookings       int            `json:"total_bookings"`
	BookingsByStatus    map[string]int `json:"bookings_by_status"`
	GrossVolume         string         `json:"gross_volume"`
	PlatformFeeRevenue  string         `json:"platform_fee_revenue"`
	PendingApplications int            `json:"pending_applications"`
	MonthlyGrowthPct    float64        `json:"monthly_growth_pct"`
}
