package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is one shipping address embedded in a User. At most one address
// per user has Default set; only the set-primary operation changes it.
type Address struct {
	ID           primitive.ObjectID `bson:"_id"                     json:"_id"`
	FirstName    string             `bson:"first_name"              json:"first_name"`
	LastName     string             `bson:"last_name"               json:"last_name"`
	Phone        string             `bson:"phone,omitempty"         json:"phone,omitempty"`
	Default      bool               `bson:"default"                 json:"default"`
	Address1     string             `bson:"address1,omitempty"      json:"address1,omitempty"`
	Address2     string             `bson:"address2,omitempty"      json:"address2,omitempty"`
	Company      string             `bson:"company,omitempty"       json:"company,omitempty"`
	Country      string             `bson:"country,omitempty"       json:"country,omitempty"`
	CountryCode  string             `bson:"country_code,omitempty"  json:"country_code,omitempty"`
	Province     string             `bson:"province,omitempty"      json:"province,omitempty"`
	ProvinceCode string             `bson:"province_code,omitempty" json:"province_code,omitempty"`
	District     string             `bson:"district,omitempty"      json:"district,omitempty"`
	DistrictCode string             `bson:"district_code,omitempty" json:"district_code,omitempty"`
	Ward         string             `bson:"ward,omitempty"          json:"ward,omitempty"`
	WardCode     string             `bson:"ward_code,omitempty"     json:"ward_code,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"               json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"               json:"updatedAt"`
}

// User is an account. Version increases on every save and guards
// concurrent read-modify-write cycles on the embedded address list.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"       json:"_id"`
	FirstName string             `bson:"first_name"          json:"first_name"`
	LastName  string             `bson:"last_name"           json:"last_name"`
	Email     string             `bson:"email"               json:"email"`
	Password  string             `bson:"password"            json:"-"`
	Gender    string             `bson:"gender,omitempty"    json:"gender,omitempty"`
	Phone     string             `bson:"phone,omitempty"     json:"phone,omitempty"`
	Birthdate *time.Time         `bson:"birthdate,omitempty" json:"birthdate,omitempty"`
	Roles     []string           `bson:"roles"               json:"roles"`
	Addresses []Address          `bson:"addresses"           json:"addresses"`
	Version   int64              `bson:"version"             json:"-"`
	CreatedAt time.Time          `bson:"createdAt"           json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"           json:"updatedAt"`
}

// DefaultAddress returns the index of the default address, or -1.
func (u *User) DefaultAddress() int {
	for i := range u.Addresses {
		if u.Addresses[i].Default {
			return i
		}
	}
	return -1
}

// AddressIndex returns the index of the address with id, or -1.
func (u *User) AddressIndex(id primitive.ObjectID) int {
	for i := range u.Addresses {
		if u.Addresses[i].ID == id {
			return i
		}
	}
	return -1
}

// HasRole reports whether the user carries role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
