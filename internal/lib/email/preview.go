package email

// PreviewData holds sample payloads for rendering templates locally with
// `tourism email preview <template>`.
var PreviewData = map[Template]any{
	TemplateWelcome: WelcomeData{
		Common: Common{Subject: "Welcome aboard!", SiteName: "Noor Travel"},
		Name:   "aisha",
	},
	TemplateBookingReceived: BookingData{
		Common:     Common{Subject: "We received your booking", SiteName: "Noor Travel"},
		Name:       "aisha",
		Reference:  "3f1c9a7e-2b4d-4f61-9a0e-5c7b8d9e0f12",
		Type:       "hotel",
		ItemName:   "Hilton Makkah Convention",
		StartDate:  "2025-03-10",
		EndDate:    "2025-03-14",
		TotalPrice: "1280.00",
		Currency:   "SAR",
		Status:     "pending",
	},
	TemplateBookingStatus: BookingData{
		Common:    Common{Subject: "Your booking is confirmed", SiteName: "Noor Travel"},
		Name:      "aisha",
		Reference: "3f1c9a7e-2b4d-4f61-9a0e-5c7b8d9e0f12",
		ItemName:  "Hilton Makkah Convention",
		StartDate: "2025-03-10",
		Status:    "confirmed",
	},
	TemplateContactAck: ContactAckData{
		Common: Common{Subject: "We got your message", SiteName: "Noor Travel"},
		Name:   "omar",
		Topic:  "Group discount for 12 travelers",
	},
}
