package service

import "fmt"

func welcomeEmailTemplate(name, role, causesURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)

	var next string
	if role == "ngo" {
		next = "Post your first cause and start connecting with volunteers."
	} else {
		next = "Browse open causes and apply to the ones that speak to you."
	}

	body := fmt.Sprintf(`Hi %s,

Your account is active!

%s

Get started: %s

Best,
The %s Team`, name, next, causesURL, appName)

	return subject, body
}

func applicationReceivedEmailTemplate(ngoName, volunteerName, causeTitle, tasksURL, appName string) (string, string) {
	subject := fmt.Sprintf("New volunteer application for %s", causeTitle)
	body := fmt.Sprintf(`Hi %s,

%s applied to volunteer for your cause "%s".

Review the application: %s

Best,
The %s Team`, ngoName, volunteerName, causeTitle, tasksURL, appName)

	return subject, body
}

func applicationApprovedEmailTemplate(volunteerName, causeTitle, tasksURL, appName string) (string, string) {
	subject := fmt.Sprintf("You're approved for %s", causeTitle)
	body := fmt.Sprintf(`Hi %s,

Good news! Your application for "%s" was approved. You can now start working on this cause.

See your tasks: %s

Best,
The %s Team`, volunteerName, causeTitle, tasksURL, appName)

	return subject, body
}

func workVerifiedEmailTemplate(volunteerName, causeTitle string, hours int, impactURL, appName string) (string, string) {
	subject := fmt.Sprintf("Your work on %s was verified", causeTitle)
	body := fmt.Sprintf(`Hi %s,

The organization behind "%s" verified your completed work. %d hours were added to your impact record.

See your impact: %s

Best,
The %s Team`, volunteerName, causeTitle, hours, impactURL, appName)

	return subject, body
}

func donationReceiptEmailTemplate(donorName, causeTitle string, amountCents int64, appName string) (string, string) {
	subject := fmt.Sprintf("Thank you for supporting %s", causeTitle)
	body := fmt.Sprintf(`Hi %s,

Thank you! Your donation of $%.2f to "%s" was recorded.

Every contribution counts.

Best,
The %s Team`, donorName, float64(amountCents)/100, causeTitle, appName)

	return subject, body
}
