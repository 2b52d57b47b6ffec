package mailer

import (
	"boxoffice/src/lib"
	"boxoffice/src/models"
	"fmt"
	"os"
)

// SendOrderConfirmation emails the customer their confirmation number
// and a summary of the purchase.
func SendOrderConfirmation(concert *models.Concert, order *models.Order, quantity int) error {
	from := os.Getenv("MAIL_FROM")
	fromName := os.Getenv("MAIL_FROM_NAME")
	subject := fmt.Sprintf("Your tickets for %s", concert.Title)
	body := fmt.Sprintf(
		"Thanks for your order!\n\n"+
			"Confirmation number: %s\n"+
			"Concert: %s at %s\n"+
			"Tickets: %d\n"+
			"Total charged: %d\n\n"+
			"See you at the show.\n",
		order.ConfirmationNumber,
		concert.Title,
		concert.Venue,
		quantity,
		order.Amount,
	)
	return lib.SendMail(&lib.SendMailInput{
		From:     from,
		FromName: fromName,
		To:       []string{order.Email},
		Subject:  subject,
		Body:     body,
	})
}
