package store

import "time"

type User struct {
	ID       int64
	Name     string
	Password *string
}

type Category struct {
	ID     int64
	UserID int64
	Name   string
}

type WorkoutData struct {
	ID         int64
	UserID     int64
	CategoryID int64
	Quantity   int
	Time       time.Time
}

type SocialAccount struct {
	ID       int64
	UserID   int64
	Provider string
	SocialID int64
	User     User
}
