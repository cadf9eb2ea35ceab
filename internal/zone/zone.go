package zone

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jnabil1974/storal.fr-sub003/internal/pricing"
)

var (
	ErrInvalidPostalCode = errors.New("invalid postal code")
	ErrZoneNotCovered    = errors.New("zone not covered")
)

var postalCodePattern = regexp.MustCompile(`^\d{5}$`)

// Installation above this width is billed per extra started metre.
const baseWidthMM = 6000

// Zone is an installation area keyed by department number.
type Zone struct {
	Name               string          `json:"name" yaml:"name"`
	Region             string          `json:"region" yaml:"region"`
	LeadTime           string          `json:"lead_time" yaml:"lead_time"`
	Available          bool            `json:"available" yaml:"available"`
	TravelFee          decimal.Decimal `json:"travel_fee" yaml:"travel_fee"`
	BasePrice          decimal.Decimal `json:"base_price" yaml:"base_price"`
	PricePerExtraMetre decimal.Decimal `json:"price_per_extra_metre" yaml:"price_per_extra_metre"`
}

// Eligibility is the answer to a coverage check.
type Eligibility struct {
	Eligible   bool   `json:"eligible"`
	PostalCode string `json:"postal_code"`
	Department string `json:"department,omitempty"`
	Zone       *Zone  `json:"zone,omitempty"`
	Reason     string `json:"reason"`
}

// Checker answers coverage questions against a fixed department table.
type Checker struct {
	zones map[string]Zone
}

func NewChecker(zones map[string]Zone) *Checker {
	copied := make(map[string]Zone, len(zones))
	for dept, z := range zones {
		copied[dept] = z
	}
	return &Checker{zones: copied}
}

// NewDefaultChecker uses the historical coverage: Île-de-France, Centre-Val de Loire
// and neighbouring departments.
func NewDefaultChecker() *Checker {
	return NewChecker(DefaultZones())
}

// Check validates the postal code format and looks its department up.
func (c *Checker) Check(postalCode string) Eligibility {
	if !postalCodePattern.MatchString(postalCode) {
		return Eligibility{PostalCode: postalCode, Reason: "Code postal invalide. Format attendu : 5 chiffres."}
	}
	dept := postalCode[:2]
	z, ok := c.zones[dept]
	if !ok || !z.Available {
		return Eligibility{
			PostalCode: postalCode,
			Department: dept,
			Reason:     "Zone non couverte actuellement. Nous intervenons en Île-de-France, Centre-Val de Loire et départements limitrophes.",
		}
	}
	return Eligibility{
		Eligible:   true,
		PostalCode: postalCode,
		Department: dept,
		Zone:       &z,
		Reason:     fmt.Sprintf("Pose disponible en %s (%s) - Délai d'intervention : %s", z.Name, dept, z.LeadTime),
	}
}

// Departments returns the covered department numbers, sorted.
func (c *Checker) Departments() []string {
	out := make([]string, 0, len(c.zones))
	for dept, z := range c.zones {
		if z.Available {
			out = append(out, dept)
		}
	}
	sort.Strings(out)
	return out
}

// InstallationCost prices professional installation of a product of the given width.
func (c *Checker) InstallationCost(widthMM int, postalCode string) (pricing.Installation, error) {
	if widthMM <= 0 {
		return pricing.Installation{}, fmt.Errorf("%w: width %d mm must be positive", pricing.ErrInvalidDimension, widthMM)
	}
	if !postalCodePattern.MatchString(postalCode) {
		return pricing.Installation{}, fmt.Errorf("%w: %q", ErrInvalidPostalCode, postalCode)
	}
	dept := postalCode[:2]
	z, ok := c.zones[dept]
	if !ok || !z.Available {
		return pricing.Installation{}, fmt.Errorf("%w: department %s", ErrZoneNotCovered, dept)
	}

	labour := z.BasePrice
	if widthMM > baseWidthMM {
		extraMetres := (widthMM - baseWidthMM + 999) / 1000
		labour = labour.Add(z.PricePerExtraMetre.Mul(decimal.NewFromInt(int64(extraMetres))))
	}
	return pricing.Installation{
		Department:  dept,
		Zone:        z.Name,
		LabourHT:    labour,
		TravelFeeHT: z.TravelFee,
	}, nil
}

// Installation implements pricing.Installer.
func (c *Checker) Installation(widthMM int, postalCode string) (pricing.Installation, error) {
	return c.InstallationCost(widthMM, postalCode)
}

func zoneOf(name, region, leadTime string, travelFee int64) Zone {
	return Zone{
		Name:               name,
		Region:             region,
		LeadTime:           leadTime,
		Available:          true,
		TravelFee:          decimal.NewFromInt(travelFee),
		BasePrice:          decimal.NewFromInt(500),
		PricePerExtraMetre: decimal.NewFromInt(100),
	}
}

const (
	regionIDF       = "Île-de-France"
	regionCentre    = "Centre-Val de Loire"
	regionNeighbour = "Départements limitrophes"
)

// DefaultZones returns a fresh copy of the built-in coverage table.
func DefaultZones() map[string]Zone {
	return map[string]Zone{
		"75": zoneOf("Paris", regionIDF, "5-7 jours", 0),
		"92": zoneOf("Hauts-de-Seine", regionIDF, "5-7 jours", 0),
		"93": zoneOf("Seine-Saint-Denis", regionIDF, "5-7 jours", 0),
		"94": zoneOf("Val-de-Marne", regionIDF, "5-7 jours", 0),
		"77": zoneOf("Seine-et-Marne", regionIDF, "5-7 jours", 50),
		"78": zoneOf("Yvelines", regionIDF, "5-7 jours", 50),
		"91": zoneOf("Essonne", regionIDF, "5-7 jours", 50),
		"95": zoneOf("Val-d'Oise", regionIDF, "5-7 jours", 50),
		"18": zoneOf("Cher", regionCentre, "3-5 jours", 100),
		"28": zoneOf("Eure-et-Loir", regionCentre, "3-5 jours", 100),
		"36": zoneOf("Indre", regionCentre, "3-5 jours", 100),
		"37": zoneOf("Indre-et-Loire", regionCentre, "3-5 jours", 100),
		"41": zoneOf("Loir-et-Cher", regionCentre, "3-5 jours", 100),
		"45": zoneOf("Loiret", regionCentre, "3-5 jours", 100),
		"72": zoneOf("Sarthe", regionNeighbour, "5-7 jours", 150),
		"89": zoneOf("Yonne", regionNeighbour, "5-7 jours", 150),
		"58": zoneOf("Nièvre", regionNeighbour, "5-7 jours", 150),
		"10": zoneOf("Aube", regionNeighbour, "5-7 jours", 150),
		"03": zoneOf("Allier", regionNeighbour, "7-10 jours", 200),
	}
}
