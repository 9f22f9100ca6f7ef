package usecase

import (
	"fmt"

	"github.com/vittamlabs/origination/internal/domain/model"
)

// Agent-side conversation copy. Each stage transition carries exactly one of
// these as its agent turn.

const (
	msgGreeting = "Hello! I'm your loan assistant. I can help you apply for a personal loan. How much would you like to borrow, and over how many months?"

	msgAskTerms       = "Great, let's get started. How much would you like to borrow, and over what tenure in months?"
	msgRepromptAmount = "I couldn't read a loan amount from that. Please tell me the amount you'd like to borrow, for example \"5 lakh for 36 months\"."

	msgAskIdentity = "To verify your identity, please share your details as:\nname: <full name>\nphone: <registered phone>\naddress: <residential address>\ndob: <YYYY-MM-DD>"

	msgRepromptIdentity = "I still need a few details. Please share name, phone, address, and dob as labelled lines."

	msgVerified = "Thanks, your identity is verified. Let me check your eligibility now."

	msgVerifyMismatch = "Some of those details don't match our records. Please check and re-enter your name, phone, address, and dob."
	msgVerifyNotFound = "I couldn't find a record for that phone number. Please check the number and try again."
	msgVerifyExhausted = "I wasn't able to verify your identity, so I can't proceed with this application. Our team will reach out to help."

	msgTryAgainLater = "I'm having trouble reaching our systems right now. Please try again in a few minutes."

	msgNeedSalarySlip = "You're almost there. For this amount I need salary verification - please upload your salary slip for the last 2 months."
	msgAskSlipAgain   = "I still need your salary slip to continue. Please upload it, or say close to end the session."
	msgSlipExhausted  = "I couldn't complete salary verification for this application, so I'm unable to proceed."

	msgSlipReceived = "Thanks, I've received your salary slip. Let me re-check your eligibility."

	msgAnythingElse = "Your sanction letter has been issued. Say close whenever you're done, or reach out to our team for disbursement."

	msgClosed = "Thanks for your time. This session is now closed - you're welcome back anytime."

	msgSessionEnded = "This conversation has ended. Please start a new session to apply again."
)

func msgRejected(reason string) string {
	return fmt.Sprintf("I'm sorry, this application can't be approved: %s.", reason)
}

func msgApproved(d model.Decision) string {
	return fmt.Sprintf(
		"Great news - your loan is approved! Offer: %s at %s%% p.a. EMI: ₹%s/month, processing fee: ₹%s, total payable: ₹%s. I'm preparing your sanction letter now.",
		d.Offer.Name,
		d.Offer.BaseRatePercent.String(),
		d.EMI.StringFixed(2),
		d.ProcessingFee.StringFixed(2),
		d.TotalPayable.StringFixed(2),
	)
}

func msgDocumentIssued(rec model.SanctionRecord) string {
	return fmt.Sprintf(
		"Your sanction letter %s is ready. Amount ₹%s over %d months at %s%% p.a., EMI ₹%s. It is valid until %s.",
		rec.Reference,
		rec.LoanAmount.StringFixed(2),
		rec.TenureMonths,
		rec.InterestRatePercent.String(),
		rec.EMI.StringFixed(2),
		rec.ValidUntil().Format("02 Jan 2006"),
	)
}
