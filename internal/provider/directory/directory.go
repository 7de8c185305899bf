// Package directory looks a business up on the maps/listing actor and
// returns at most one structured listing.
package directory

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"leadscout-engine/internal/provider"
)

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
	Postal  string `json:"postal,omitempty"`
	Country string `json:"country,omitempty"`
}

// Listing is the structured business record from the maps actor. A nil
// *Listing means "no match", which is not an error.
type Listing struct {
	Name        string   `json:"name,omitempty"`
	Website     string   `json:"website,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Category    string   `json:"category,omitempty"`
	Address     Address  `json:"address"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"review_count,omitempty"`
}

type Provider interface {
	Lookup(ctx context.Context, name, locationHint string) (*Listing, error)
}

type Actor struct {
	client  *provider.Client
	actorID string
	timeout time.Duration
}

func NewActor(client *provider.Client, actorID string, timeout time.Duration) *Actor {
	return &Actor{client: client, actorID: actorID, timeout: timeout}
}

type actorInput struct {
	SearchStringsArray        []string `json:"searchStringsArray"`
	MaxCrawledPlacesPerSearch int      `json:"maxCrawledPlacesPerSearch"`
	Language                  string   `json:"language"`
	MaxReviews                int      `json:"maxReviews"`
	MaxImages                 int      `json:"maxImages"`
}

// listingItem tolerates the field-name drift between actor builds.
type listingItem struct {
	Title            string   `json:"title"`
	Name             string   `json:"name"`
	Website          string   `json:"website"`
	Phone            string   `json:"phone"`
	PhoneUnformatted string   `json:"phoneUnformatted"`
	Rating           *float64 `json:"rating"`
	TotalScore       *float64 `json:"totalScore"`
	UserRatingsTotal *int     `json:"userRatingsTotal"`
	ReviewsCount     *int     `json:"reviewsCount"`
	CategoryName     string   `json:"categoryName"`
	Street           string   `json:"street"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	PostalCode       string   `json:"postalCode"`
	Country          string   `json:"country"`
	CountryCode      string   `json:"countryCode"`
}

func (a *Actor) Lookup(ctx context.Context, name, locationHint string) (*Listing, error) {
	query := name
	if strings.TrimSpace(locationHint) != "" {
		query = name + " " + locationHint
	}

	items, err := a.client.RunAndCollect(ctx, a.actorID, actorInput{
		SearchStringsArray:        []string{query},
		MaxCrawledPlacesPerSearch: 1,
		Language:                  "en",
	}, a.timeout, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var it listingItem
	if err := json.Unmarshal(items[0], &it); err != nil {
		return nil, &provider.Error{Provider: "directory", Op: "decode-listing", Err: err}
	}

	l := &Listing{
		Name:     firstNonEmpty(it.Title, it.Name),
		Website:  it.Website,
		Phone:    firstNonEmpty(it.Phone, it.PhoneUnformatted),
		Category: it.CategoryName,
		Address: Address{
			Street:  it.Street,
			City:    it.City,
			Region:  it.State,
			Postal:  it.PostalCode,
			Country: firstNonEmpty(it.Country, it.CountryCode),
		},
	}
	if it.Rating != nil {
		l.Rating = it.Rating
	} else {
		l.Rating = it.TotalScore
	}
	if it.UserRatingsTotal != nil {
		l.ReviewCount = it.UserRatingsTotal
	} else {
		l.ReviewCount = it.ReviewsCount
	}
	return l, nil
}

func firstNonEmpty(xs ...string) string {
	for _, x := range xs {
		if strings.TrimSpace(x) != "" {
			return x
		}
	}
	return ""
}
