package domain

// Room is a bookable physical lab
type Room struct {
	ID       int64
	Name     string
	Capacity int
	IsActive bool
}
