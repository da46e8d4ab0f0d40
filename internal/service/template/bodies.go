package template

import "fmt"

func warrantyClaimBody(firstName string) string {
	return fmt.Sprintf(`Dear %s,

Thank you for contacting Auto Assist Group regarding your warranty inquiry.

We have received your warranty claim and our Aftercare Team is reviewing the details. To process your claim efficiently, we may need some additional information:

• Vehicle registration number
• Current mileage reading (with dashboard photo)
• Any new fault codes or error messages
• Details of any recent services or repairs

Our warranty claim form is available at: https://autoassistgroup.com/report/claims

We will review your case within 2-3 business days and contact you with next steps. If your claim is approved, we will arrange the necessary remedial work at no cost to you.

If you have any questions in the meantime, please don't hesitate to contact us.

Best regards,
Auto Assist Group - Aftercare Team`, firstName)
}

func technicalSupportBody(firstName string) string {
	return fmt.Sprintf(`Dear %s,

Thank you for reaching out regarding your technical issue.

We've received your inquiry and our technical team is reviewing the details. Based on the information provided, we will:

1. Assess the technical requirements for your vehicle
2. Provide you with a detailed solution and quote
3. Schedule the work at your convenience

Our technical specialists will contact you within 24 hours to discuss:
• Diagnostic findings and recommendations
• Service options and pricing
• Appointment availability

In the meantime, if you experience any urgent issues with your vehicle, please contact us immediately at 01234 567890.

Best regards,
Auto Assist Group - Technical Support Team`, firstName)
}

func customerServiceBody(firstName string) string {
	return fmt.Sprintf(`Dear %s,

Thank you for contacting Auto Assist Group.

We have received your inquiry and appreciate you choosing our services. Our customer service team is reviewing your request and will respond within 24 hours.

For immediate assistance, you can reach us at:
• Phone: 01234 567890 (Mon-Fri 8AM-6PM)
• Email: support@autoassistgroup.com

If you're looking to book a service, you can also use our online booking system at: https://autoassistgroup.com/book

We look forward to assisting you with your automotive needs.

Kind regards,
Auto Assist Group Customer Service Team`, firstName)
}

func defaultBody(firstName, ticketCode string) string {
	return fmt.Sprintf(`Dear %s,

Thank you for contacting Auto Assist Group regarding ticket #%s.

We have received your message and our team is reviewing it.

Best regards,
Auto Assist Group Support Team`, firstName, ticketCode)
}
