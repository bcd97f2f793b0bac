package dashboard

type Stats struct {
	TotalUsers     int64   `json:"totalUsers" example:"120"`
	TotalClasses   int64   `json:"totalClasses" example:"14"`
	TotalReviews   int64   `json:"totalReviews" example:"57"`
	TotalBookings  int64   `json:"totalBookings" example:"310"`
	AverageRating  float64 `json:"averageRating" example:"4.3"`
	EngagementRate float64 `json:"engagementRate" example:"62.5"`
}

type Response struct {
	Success bool  `json:"success" example:"true"`
	Stats   Stats `json:"stats"`
}
