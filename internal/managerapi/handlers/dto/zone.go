package dto

// ZoneResponse describes an installation zone.
type ZoneResponse struct {
	Name      string `json:"name"`
	Region    string `json:"region"`
	LeadTime  string `json:"lead_time"`
	TravelFee string `json:"travel_fee"`
}

// ZoneCheckResponse answers GET /zones/check.
type ZoneCheckResponse struct {
	Eligible   bool          `json:"eligible"`
	PostalCode string        `json:"postal_code"`
	Department string        `json:"department,omitempty"`
	Zone       *ZoneResponse `json:"zone,omitempty"`
	Message    string        `json:"message"`
	// Installation is the installation estimate when a width was given and the zone is covered.
	Installation *InstallationResponse `json:"installation,omitempty"`
}

type InstallationResponse struct {
	WidthMM     int    `json:"width_mm"`
	LabourHT    string `json:"labour_ht"`
	TravelFeeHT string `json:"travel_fee_ht"`
	TotalHT     string `json:"total_ht"`
}
