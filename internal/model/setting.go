package model

import (
	"regexp"
	"time"
)

type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	IsPublic  bool      `json:"is_public"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSettings are inserted by the seed command. Existing keys are kept.
var DefaultSettings = []Setting{
	{Key: "site_name", Value: "Tourism", IsPublic: true},
	{Key: "site_description", Value: "Hotels, cars, tours and Umrah packages", IsPublic: true},
	{Key: "contact_email", Value: "info@example.com", IsPublic: true},
	{Key: "contact_phone", Value: "+10000000000", IsPublic: true},
	{Key: "address", Value: "", IsPublic: true},
	{Key: "currency", Value: "USD", IsPublic: true},
	{Key: "facebook_url", Value: "", IsPublic: true},
	{Key: "instagram_url", Value: "", IsPublic: true},
	{Key: "twitter_url", Value: "", IsPublic: true},
	{Key: "whatsapp_number", Value: "", IsPublic: true},
	{Key: "booking_terms", Value: "", IsPublic: true},
	{Key: "admin_notification_email", Value: "", IsPublic: false},
}

// IsPublicSettingKey reports whether key is exposed on the public endpoint
// when it is first created through the admin API.
func IsPublicSettingKey(key string) bool {
	for _, s := range DefaultSettings {
		if s.Key == key {
			return s.IsPublic
		}
	}
	return false
}

type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" validate:"required,min=1,max=100,dive,keys,required,max=100,endkeys,max=5000"`
}

var settingKeyRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func (r *UpdateSettingsRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	var fe fieldErrors
	for key := range r.Settings {
		if !settingKeyRe.MatchString(key) {
			fe.add("settings."+key, "key must be lower snake case")
		}
	}
	return fe.err()
}
