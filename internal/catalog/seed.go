package catalog

type seedEntry struct {
	name     string
	priority int
}

var defaultSeed = map[int][]seedEntry{
	1: {
		{"CRM", 8},
		{"E-commerce Platforms", 10},
		{"Accounting and Invoicing", 9},
		{"Marketing Automation Tools", 7},
		{"Cloud Storage and Collaboration", 6},
		{"Analytics and Reporting Tools", 8},
		{"Social Media Presence and SEO", 9},
		{"Mobile App (Loyalty/Purchases)", 7},
		{"Online Appointment Tools", 4},
	},
	2: {
		{"CRM", 7},
		{"Mobile Ordering App / Site", 8},
		{"QR Code Menus", 9},
		{"E-commerce Platforms", 9},
		{"Accounting and Invoicing", 8},
		{"Marketing Automation Tools", 6},
		{"Cloud Storage and Collaboration", 5},
		{"Social Media Presence and SEO", 9},
		{"Online Appointment Tools", 7},
		{"Project Management Tools", 4},
	},
	3: {
		{"Mobile App for Bookings", 8},
		{"CRM", 8},
		{"Accounting and Invoicing", 7},
		{"Marketing Automation Tools", 6},
		{"Cloud Storage and Collaboration", 5},
		{"Social Media Presence and SEO", 8},
		{"Online Appointment Tools", 10},
		{"Project Management Tools", 3},
	},
	4: {
		{"CRM", 9},
		{"E-commerce Platforms", 9},
		{"Accounting and Invoicing", 7},
		{"Project Management Tools", 6},
		{"Marketing Automation Tools", 7},
		{"Cloud Storage and Collaboration", 6},
		{"Dynamic Pricing Tools", 7},
		{"Social Media Presence and SEO", 10},
		{"Online Appointment Tools", 8},
	},
	5: {
		{"CRM", 7},
		{"Virtual Classrooms", 8},
		{"E-commerce Platforms", 8},
		{"Accounting and Invoicing", 7},
		{"Marketing Automation Tools", 6},
		{"Cloud Storage and Collaboration", 7},
		{"Social Media Presence and SEO", 8},
		{"Online Appointment Tools", 6},
		{"Project Management Tools", 5},
	},
	6: {
		{"CRM", 8},
		{"E-commerce Platforms", 6},
		{"Accounting and Invoicing", 9},
		{"Project Management Tools", 10},
		{"Marketing Automation Tools", 7},
		{"Cloud Storage and Collaboration", 9},
		{"Cybersecurity Solutions", 10},
		{"Communication Tools", 9},
		{"Analytics and Reporting Tools", 8},
		{"Social Media Presence and SEO", 7},
	},
	7: {
		{"CRM", 7},
		{"Accounting and Invoicing", 8},
		{"Marketing Automation Tools", 4},
		{"Cloud Storage and Collaboration", 6},
		{"Social Media Presence and SEO", 7},
		{"Online Appointment Tools", 8},
		{"Project Management Tools", 7},
	},
	8: {
		{"CRM", 6},
		{"Ride-Hailing App Integration", 9},
		{"GPS Fleet Tracking", 8},
		{"Dynamic Route Optimization", 7},
		{"E-commerce Platforms", 9},
		{"Accounting and Invoicing", 7},
		{"Project Management Tools", 6},
		{"Marketing Automation Tools", 5},
		{"Cloud Storage and Collaboration", 5},
		{"Social Media Presence and SEO", 7},
		{"Online Appointment Tools", 8},
	},
	9: {
		{"CRM", 8},
		{"Accounting and Invoicing", 7},
		{"Marketing Automation Tools", 6},
		{"Cloud Storage and Collaboration", 6},
		{"Social Media Presence and SEO", 8},
		{"Online Appointment Tools", 10},
		{"Wearable Device Integration", 7},
		{"Electronic Health Records (integrations)", 8},
		{"Project Management Tools", 4},
	},
	10: {
		{"CRM", 6},
		{"E-commerce Platforms", 9},
		{"Accounting and Invoicing", 7},
		{"Project Management Tools", 5},
		{"Marketing Automation Tools", 5},
		{"Cloud Storage and Collaboration", 6},
		{"Social Media Presence and SEO", 8},
		{"Online Appointment Tools", 3},
		{"Supply Chain Automation", 7},
	},
}

// DefaultTools returns the built-in catalog, grouped by category in ascending
// order and in listing order within each category.
func DefaultTools() []Tool {
	var tools []Tool
	for category := 1; category <= len(defaultSeed); category++ {
		for _, e := range defaultSeed[category] {
			tools = append(tools, Tool{
				Category:     category,
				ToolCategory: e.name,
				DisplayName:  e.name,
				Priority:     e.priority,
			})
		}
	}
	return tools
}
