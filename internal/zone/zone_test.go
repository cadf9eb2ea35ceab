package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnabil1974/storal.fr-sub003/internal/pricing"
)

func TestCheck(t *testing.T) {
	c := NewDefaultChecker()

	tests := []struct {
		postal   string
		eligible bool
		dept     string
	}{
		{"75011", true, "75"},
		{"03100", true, "03"},
		{"45000", true, "45"},
		{"13001", false, "13"},
		{"7501", false, ""},
		{"750011", false, ""},
		{"75O11", false, ""},
		{"", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.postal, func(t *testing.T) {
			e := c.Check(tt.postal)
			assert.Equal(t, tt.eligible, e.Eligible)
			assert.Equal(t, tt.dept, e.Department)
			assert.NotEmpty(t, e.Reason)
			if tt.eligible {
				require.NotNil(t, e.Zone)
			} else {
				assert.Nil(t, e.Zone)
			}
		})
	}
}

func TestCheckUnavailableZone(t *testing.T) {
	zones := DefaultZones()
	z := zones["75"]
	z.Available = false
	zones["75"] = z

	c := NewChecker(zones)
	assert.False(t, c.Check("75001").Eligible)
	assert.NotContains(t, c.Departments(), "75")
	assert.Contains(t, c.Departments(), "92")
}

func TestInstallationCost(t *testing.T) {
	c := NewDefaultChecker()

	tests := []struct {
		name      string
		width     int
		postal    string
		labour    string
		travelFee string
	}{
		{"paris up to six metres", 6000, "75011", "500", "0"},
		{"one started metre above", 6001, "75011", "600", "0"},
		{"exactly one metre above", 7000, "92100", "600", "0"},
		{"two started metres", 7001, "77100", "700", "50"},
		{"far department", 3000, "03100", "500", "200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := c.InstallationCost(tt.width, tt.postal)
			require.NoError(t, err)
			assert.True(t, inst.LabourHT.Equal(pricing.Round2(inst.LabourHT)))
			assert.Equal(t, tt.labour, inst.LabourHT.String())
			assert.Equal(t, tt.travelFee, inst.TravelFeeHT.String())
			assert.Equal(t, tt.postal[:2], inst.Department)
		})
	}
}

func TestInstallationCostErrors(t *testing.T) {
	c := NewDefaultChecker()

	_, err := c.InstallationCost(3000, "13001")
	assert.ErrorIs(t, err, ErrZoneNotCovered)

	_, err = c.InstallationCost(3000, "abc")
	assert.ErrorIs(t, err, ErrInvalidPostalCode)

	_, err = c.InstallationCost(0, "75011")
	assert.ErrorIs(t, err, pricing.ErrInvalidDimension)
}

func TestCheckerIsAnInstaller(t *testing.T) {
	var installer pricing.Installer = NewDefaultChecker()
	inst, err := installer.Installation(4000, "78000")
	require.NoError(t, err)
	assert.Equal(t, "Yvelines", inst.Zone)
}
