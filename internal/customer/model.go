package customer

import "time"

// SessionAddr is empty when the person has no live connection; events
// addressed to them are dropped.
type Customer struct {
	ID          string    `json:"customerId"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	SessionAddr string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Admin struct {
	ID          string    `json:"adminId"`
	Name        string    `json:"name"`
	SessionAddr string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}
