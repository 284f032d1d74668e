package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/user"
)

// ClerkDirectory reads user profiles from Clerk.
type ClerkDirectory struct{}

// NewClerkDirectory sets the Clerk API key used by the SDK.
func NewClerkDirectory(secretKey string) *ClerkDirectory {
	clerk.SetKey(secretKey)
	return &ClerkDirectory{}
}

func (ClerkDirectory) Lookup(ctx context.Context, externalID string) (string, string, error) {
	u, err := user.Get(ctx, externalID)
	if err != nil {
		return "", "", fmt.Errorf("fetch clerk user %s: %w", externalID, err)
	}

	var email string
	for _, addr := range u.EmailAddresses {
		if addr == nil {
			continue
		}
		if email == "" || (u.PrimaryEmailAddressID != nil && addr.ID == *u.PrimaryEmailAddressID) {
			email = addr.EmailAddress
		}
	}
	if email == "" {
		return "", "", fmt.Errorf("clerk user %s has no email address", externalID)
	}

	var parts []string
	for _, p := range []*string{u.FirstName, u.LastName} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, strings.TrimSpace(*p))
		}
	}
	name := strings.Join(parts, " ")
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	return name, email, nil
}
