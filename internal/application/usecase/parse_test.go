package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vittamlabs/origination/internal/application/dto"
	"github.com/vittamlabs/origination/internal/domain/valueobject"
)

func TestParseLoanTerms(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantAmount string
		wantTenure int
		hasAmount  bool
		hasTenure  bool
	}{
		{"plain amount and months", "I need 150000 for 24 months", "150000", 24, true, true},
		{"comma grouping", "1,50,000 over 36 months", "150000", 36, true, true},
		{"lakh multiplier", "5 lakh for 3 years", "500000", 36, true, true},
		{"lakhs plural", "2 lakhs", "200000", 0, true, false},
		{"k multiplier", "give me 500k", "500000", 0, true, false},
		{"rupee prefix", "₹250000 for 12 months", "250000", 12, true, true},
		{"rs prefix", "rs. 75000", "75000", 0, true, false},
		{"tenure only", "24 months", "", 24, false, true},
		{"years convert to months", "loan for 2 years of 100000", "100000", 24, true, true},
		{"small bare numbers ignored", "I have 3 loans already", "", 0, false, false},
		{"largest candidate wins", "maybe 100000, actually 300000", "300000", 0, true, false},
		{"nothing usable", "how does this work?", "", 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLoanTerms(tt.text)
			assert.Equal(t, tt.hasAmount, got.HasAmount)
			assert.Equal(t, tt.hasTenure, got.HasTenure)
			if tt.hasAmount {
				assert.Equal(t, tt.wantAmount, got.Amount.String())
			}
			if tt.hasTenure {
				assert.Equal(t, tt.wantTenure, got.TenureMonths)
			}
		})
	}
}

func TestParseIdentityFields(t *testing.T) {
	t.Run("labelled lines", func(t *testing.T) {
		got := parseIdentityFields("name: Rahul Sharma\nphone: 9876543210\naddress: 14 MG Road, Bengaluru\ndob: 1990-04-12")
		assert.Equal(t, "Rahul Sharma", got.Name)
		assert.Equal(t, "9876543210", got.Phone)
		assert.Equal(t, "14 MG Road, Bengaluru", got.Address)
		assert.Equal(t, "1990-04-12", got.DateOfBirth)
		assert.True(t, got.Complete())
	})

	t.Run("label aliases", func(t *testing.T) {
		got := parseIdentityFields("mobile: 9812345670\ndate of birth: 1992-08-30")
		assert.Equal(t, "9812345670", got.Phone)
		assert.Equal(t, "1992-08-30", got.DateOfBirth)
		assert.False(t, got.Complete())
	})

	t.Run("equals separator and mixed case", func(t *testing.T) {
		got := parseIdentityFields("Name = Priya Nair\nPHONE: 9812345670")
		assert.Equal(t, "Priya Nair", got.Name)
		assert.Equal(t, "9812345670", got.Phone)
	})

	t.Run("free text yields nothing", func(t *testing.T) {
		got := parseIdentityFields("my details are all on file already")
		assert.False(t, got.Complete())
	})
}

func TestIsGreetingOnly(t *testing.T) {
	assert.True(t, isGreetingOnly("hi"))
	assert.True(t, isGreetingOnly("  Hello! "))
	assert.True(t, isGreetingOnly("good morning"))
	assert.False(t, isGreetingOnly("hi, I need a loan"))
	assert.False(t, isGreetingOnly("150000"))
}

func TestIsCloseIntent(t *testing.T) {
	assert.True(t, isCloseIntent("close"))
	assert.True(t, isCloseIntent("  Not Interested "))
	assert.True(t, isCloseIntent("bye"))
	assert.False(t, isCloseIntent("don't close my application"))
	assert.False(t, isCloseIntent("bye the way, what's my EMI?"))
}

func TestHasSalarySlipMarker(t *testing.T) {
	assert.True(t, hasSalarySlipMarker("[document:salary_slip]"))
	assert.True(t, hasSalarySlipMarker("here's my salary slip"))
	assert.True(t, hasSalarySlipMarker("attached payslip"))
	assert.True(t, hasSalarySlipMarker("salary certificate attached"))
	assert.False(t, hasSalarySlipMarker("my salary is 80000"))
}

func TestDetectPrompts(t *testing.T) {
	t.Run("discovery stage advertises term fields", func(t *testing.T) {
		got := detectPrompts(valueobject.StageNeedsDiscovery, msgAskTerms)
		names := promptNames(got)
		assert.ElementsMatch(t, []string{"amount", "tenure_months"}, names)
	})

	t.Run("verifying stage advertises identity fields", func(t *testing.T) {
		got := detectPrompts(valueobject.StageVerifying, msgAskIdentity)
		names := promptNames(got)
		assert.ElementsMatch(t, []string{"name", "phone", "address", "dob"}, names)
	})

	t.Run("salary slip request advertises the document", func(t *testing.T) {
		got := detectPrompts(valueobject.StageSalarySlipPending, msgNeedSalarySlip)
		names := promptNames(got)
		assert.Equal(t, []string{"salary_slip"}, names)
	})

	t.Run("document words without upload context stay silent", func(t *testing.T) {
		got := detectPrompts(valueobject.StageDocumentIssued, "Your salary slip was already reviewed.")
		assert.Empty(t, got)
	})
}

func promptNames(prompts []dto.InputPrompt) []string {
	names := make([]string, 0, len(prompts))
	for _, p := range prompts {
		names = append(names, p.Name)
	}
	return names
}
