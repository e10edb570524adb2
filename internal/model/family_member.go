package model

import "time"

type FamilyMember struct {
	ID        int64     `json:"member_id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
