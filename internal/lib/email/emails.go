package email

import "context"

// Common is embedded in every template payload.
type Common struct {
	Subject  string
	SiteName string
}

type WelcomeData struct {
	Common
	Name string
}

type BookingData struct {
	Common
	Name       string
	Reference  string
	Type       string
	ItemName   string
	StartDate  string
	EndDate    string
	TotalPrice string
	Currency   string
	Status     string
}

type ContactAckData struct {
	Common
	Name  string
	Topic string
}

func (c *Client) SendWelcomeEmail(ctx context.Context, to string, data WelcomeData) error {
	data.Subject = "Welcome aboard!"
	return c.SendEmail(ctx, to, data.Subject, TemplateWelcome, data)
}

func (c *Client) SendBookingReceivedEmail(ctx context.Context, to string, data BookingData) error {
	data.Subject = "We received your booking"
	return c.SendEmail(ctx, to, data.Subject, TemplateBookingReceived, data)
}

func (c *Client) SendBookingStatusEmail(ctx context.Context, to string, data BookingData) error {
	data.Subject = "Your booking is " + data.Status
	return c.SendEmail(ctx, to, data.Subject, TemplateBookingStatus, data)
}

func (c *Client) SendContactAckEmail(ctx context.Context, to string, data ContactAckData) error {
	data.Subject = "We got your message"
	return c.SendEmail(ctx, to, data.Subject, TemplateContactAck, data)
}
