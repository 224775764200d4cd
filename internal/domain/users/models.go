package users

import "time"

type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	PositionID string    `json:"positionId,omitempty"`
	ManagerID  string    `json:"managerId,omitempty"`
	MentorID   string    `json:"mentorId,omitempty"`
	Position   *Position `json:"position,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Position struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Track string `json:"track"`
}
