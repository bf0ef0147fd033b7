package models

import "time"

// Field bounds for customers
const (
	CustomerNameMinLen    = 2
	CustomerNameMaxLen    = 255
	CustomerPhoneMaxLen   = 50
	CustomerEmailMaxLen   = 255
	CustomerAddressMaxLen = 1000
	CustomerNotesMaxLen   = 5000
	CustomerMaxTags       = 10
)

// Tag is a customer label drawn from a fixed enumeration
type Tag string

// Customer tags
const (
	TagLangganan Tag = "langganan"
	TagRewel     Tag = "rewel"
	TagPotensial Tag = "potensial"
)

// AllTags lists every allowed tag in display order
var AllTags = []Tag{TagLangganan, TagRewel, TagPotensial}

// IsValidTag checks if the tag belongs to the enumeration
func IsValidTag(tag string) bool {
	switch Tag(tag) {
	case TagLangganan, TagRewel, TagPotensial:
		return true
	default:
		return false
	}
}

// Customer represents a customer in the system
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	Address   *string   `json:"address"`
	Tags      []Tag     `json:"tags"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerInput is the validated and sanitized payload for create and full update
type CustomerInput struct {
	Name    string
	Phone   *string
	Email   *string
	Address *string
	Tags    []Tag
	Notes   *string
}

// Apply copies the input onto the customer, replacing every field
func (in CustomerInput) Apply(c *Customer) {
	c.Name = in.Name
	c.Phone = in.Phone
	c.Email = in.Email
	c.Address = in.Address
	c.Tags = in.Tags
	if c.Tags == nil {
		c.Tags = []Tag{}
	}
	c.Notes = in.Notes
}

// TagStrings returns the tags as plain strings for storage
func (c *Customer) TagStrings() []string {
	out := make([]string, len(c.Tags))
	for i, t := range c.Tags {
		out[i] = string(t)
	}
	return out
}
