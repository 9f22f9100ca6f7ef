package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Free-text extraction for the handful of structured inputs the conversation
// needs. Natural-language understanding is out of scope; these recognize the
// formats the chat client sends (labelled fields and plain amount/tenure
// phrases).

var (
	amountRe = regexp.MustCompile(`(?i)(?:₹|rs\.?|inr)?\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)\s*(lakhs?|lacs?|l\b|k\b)?`)
	tenureRe = regexp.MustCompile(`(?i)([0-9]{1,3})\s*(months?|mos?\b|years?|yrs?\b)`)

	labelRe = regexp.MustCompile(`(?im)^\s*(name|phone|mobile|address|dob|date of birth)\s*[:=]\s*(.+?)\s*$`)
)

type loanTerms struct {
	Amount       decimal.Decimal
	TenureMonths int
	HasAmount    bool
	HasTenure    bool
}

// parseLoanTerms extracts a requested amount and tenure from free text.
// "5 lakh" style multipliers are expanded; tenure phrased in years is
// converted to months. Bare numbers below 1000 are not treated as amounts so
// "24 months" never reads as a principal.
func parseLoanTerms(text string) loanTerms {
	var out loanTerms

	stripped := tenureRe.ReplaceAllString(text, " ")
	for _, m := range amountRe.FindAllStringSubmatch(stripped, -1) {
		raw := strings.ReplaceAll(m[1], ",", "")
		val, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		switch {
		case m[2] != "":
			unit := strings.ToLower(strings.TrimSpace(m[2]))
			if strings.HasPrefix(unit, "k") {
				val = val.Mul(decimal.NewFromInt(1000))
			} else {
				val = val.Mul(decimal.NewFromInt(100000))
			}
		case val.LessThan(decimal.NewFromInt(1000)):
			continue
		}
		if !out.HasAmount || val.GreaterThan(out.Amount) {
			out.Amount = val
			out.HasAmount = true
		}
	}

	if m := tenureRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 {
			if strings.HasPrefix(strings.ToLower(m[2]), "y") {
				n *= 12
			}
			out.TenureMonths = n
			out.HasTenure = true
		}
	}

	return out
}

type identityFields struct {
	Name        string
	Phone       string
	Address     string
	DateOfBirth string
}

// parseIdentityFields reads "label: value" lines (the shape the chat client
// sends after an identity prompt).
func parseIdentityFields(text string) identityFields {
	var out identityFields
	for _, m := range labelRe.FindAllStringSubmatch(text, -1) {
		value := strings.TrimSpace(m[2])
		switch strings.ToLower(m[1]) {
		case "name":
			out.Name = value
		case "phone", "mobile":
			out.Phone = value
		case "address":
			out.Address = value
		case "dob", "date of birth":
			out.DateOfBirth = value
		}
	}
	return out
}

func (f identityFields) Complete() bool {
	return f.Name != "" && f.Phone != "" && f.Address != "" && f.DateOfBirth != ""
}

var greetings = map[string]struct{}{
	"hi": {}, "hello": {}, "hey": {}, "hii": {}, "yo": {},
	"good morning": {}, "good afternoon": {}, "good evening": {},
	"namaste": {}, "hi there": {}, "hello there": {},
}

// isGreetingOnly reports whether the message is a pure greeting
// acknowledgement with no actionable content.
func isGreetingOnly(text string) bool {
	t := strings.ToLower(strings.TrimSpace(strings.Trim(strings.TrimSpace(text), "!.")))
	_, ok := greetings[t]
	return ok
}

var closePhrases = []string{
	"close", "exit", "quit", "cancel", "goodbye", "bye", "end session",
	"stop", "not interested", "no thanks",
}

// isCloseIntent reports whether the customer asked to end the conversation.
func isCloseIntent(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, p := range closePhrases {
		if t == p {
			return true
		}
	}
	return false
}

var slipRe = regexp.MustCompile(`(?i)salary\s*slip|pay\s*slip|salary\s*certificate|\[document:salary_slip\]`)

// hasSalarySlipMarker reports whether the message carries a salary-slip
// upload marker from the client.
func hasSalarySlipMarker(text string) bool {
	return slipRe.MatchString(text)
}
