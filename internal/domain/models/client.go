package models

import "time"

// Client is a registered customer. Email is unique across clients.
type Client struct {
	ID        string    `json:"id" example:"a1b2c3d4-e5f6-7890-1234-567890abcdef"`
	Name      string    `json:"name" example:"Bruce Wayne"`
	Email     string    `json:"email" example:"wayne.enterprises@email.com"`
	BirthDate time.Time `json:"birthDate" example:"1815-12-10T00:00:00Z"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClientWithSales is a client plus its sales ordered by sale date ascending.
type ClientWithSales struct {
	Client
	Sales []Sale `json:"sales"`
}

// ClientSummary is the subset of client fields embedded in sales and rankings.
type ClientSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ClientFilter holds the case-insensitive partial filters for listings.
type ClientFilter struct {
	Name  string
	Email string
}

// ClientUpdate carries the fields of a partial update; nil means unchanged.
type ClientUpdate struct {
	Name      *string
	Email     *string
	BirthDate *time.Time
}

// Empty reports whether the update changes nothing.
func (u ClientUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.BirthDate == nil
}

// ClientPage is one page of a filtered client listing.
type ClientPage struct {
	Data     []Client
	Total    int
	Page     int
	Limit    int
	LastPage int
}
