package email

import "fmt"

func ProposalSentBody(engagementTitle string, price float64) (subject, body string) {
	subject = "New proposal received"
	body = fmt.Sprintf(
		"<p>You have received a proposal for <b>%s</b>.</p><p>Offered price: %.2f</p>",
		engagementTitle, price,
	)
	return subject, body
}

func ProposalAcceptedBody(engagementTitle string) (subject, body string) {
	subject = "Your proposal was accepted"
	body = fmt.Sprintf(
		"<p>Your proposal for <b>%s</b> has been accepted. You can start working now.</p>",
		engagementTitle,
	)
	return subject, body
}

func MilestoneDecisionBody(engagementTitle string, percentage int, decision string) (subject, body string) {
	subject = fmt.Sprintf("Milestone %d%% %s", percentage, decision)
	body = fmt.Sprintf(
		"<p>The %d%% milestone of <b>%s</b> was %s.</p>",
		percentage, engagementTitle, decision,
	)
	return subject, body
}
