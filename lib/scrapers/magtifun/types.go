package magtifun

import "time"

// SessionToken is the value of the site's `User` cookie, it is the only
// credential the site knows about. Its validity can only be determined by
// probing the site (see Client.IsValid).
type SessionToken string

// UserIdentity is an authenticated user, it is created by Client.Login or
// from a token the caller already holds.
type UserIdentity struct {
	token SessionToken
}

func NewUserIdentity(token SessionToken) UserIdentity {
	return UserIdentity{token: token}
}

func (u UserIdentity) Token() SessionToken {
	return u.token
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// DefaultGender is the gender reported when the settings page does not have
// the "female" radio checked. The page only ever marks one radio as checked,
// so an unchecked female radio (or a missing one) resolves to this value.
const DefaultGender = GenderMale

type AccountProfile struct {
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Username  string     `json:"username,omitempty"`
	Phone     string     `json:"phone"`
	City      string     `json:"city"`
	Birthdate *time.Time `json:"birthdate,omitempty"`
	Gender    Gender     `json:"gender"`
}

type Balance struct {
	Credit int `json:"credit"`
	Amount int `json:"amount"`
}

type BalanceHistoryItem struct {
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
	Amount  uint      `json:"amount"`
	// Charge is true when the amount was taken from the balance.
	Charge bool `json:"charge"`
}

type SmsHistoryItem struct {
	Id        int       `json:"id"`
	Date      time.Time `json:"date"`
	Recipient string    `json:"recipient"`
	Text      string    `json:"text"`
	Delivered bool      `json:"delivered"`
}

type SmsOnSend struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

type SmsSendResult struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	// Code is the raw status code returned by the site.
	Code string `json:"-"`
}
