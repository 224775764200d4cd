package cycles

import "time"

type Cycle struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartDate  time.Time `json:"startDate"`
	ReviewDate time.Time `json:"reviewDate"`
	EndDate    time.Time `json:"endDate"`
}
